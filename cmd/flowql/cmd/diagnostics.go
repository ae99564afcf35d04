package cmd

import (
	"os"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/diagnostics"
	"github.com/cwbudde/flowql/internal/parser"
	"github.com/cwbudde/flowql/internal/semantic"
	"github.com/spf13/cobra"
)

var diagnosticsExpr string

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics [file]",
	Short: "Parse and convert flowql source, emitting diagnostics as JSON Lines",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDiagnostics,
}

func init() {
	rootCmd.AddCommand(diagnosticsCmd)
	diagnosticsCmd.Flags().StringVarP(&diagnosticsExpr, "expression", "e", "", "parse a source string from the command line")
}

func runDiagnostics(cmd *cobra.Command, args []string) error {
	source, name, err := readSource(diagnosticsExpr, args)
	if err != nil {
		return err
	}
	file := parser.ParseFile(source, name)

	var diags []diagnostics.Diagnostic
	collectErrors(file, name, &diags)

	pkg := &ast.Package{BaseNode: ast.BaseNode{Loc: file.Loc}, Package: "main", Files: []*ast.File{file}}
	fresher := semantic.NewFresher(cfg.FresherSeed)
	if _, err := semantic.ConvertWith(pkg, fresher); err != nil {
		diags = append(diags, diagnostics.Diagnostic{File: name, Severity: "error", Message: err.Error()})
	}

	filtered := diags[:0]
	for _, d := range diags {
		if cfg.Suppressed(d.Message) {
			continue
		}
		filtered = append(filtered, d)
	}
	return diagnostics.Write(os.Stdout, filtered)
}

// collectErrors walks the AST gathering every node's error list into diags.
func collectErrors(n ast.Node, file string, diags *[]diagnostics.Diagnostic) {
	if n == nil {
		return
	}
	loc := n.Location()
	for _, msg := range n.ErrorList() {
		*diags = append(*diags, diagnostics.Diagnostic{
			File:     file,
			Line:     loc.Start.Line,
			Column:   loc.Start.Column,
			Severity: "error",
			Message:  msg,
		})
	}
	walkChildren(n, func(child ast.Node) { collectErrors(child, file, diags) })
}

// walkChildren invokes fn on each direct AST child of n, enough to reach
// every error-bearing node without depending on a general-purpose AST
// walker (the AST only needs this once, for diagnostics export).
func walkChildren(n ast.Node, fn func(ast.Node)) {
	switch node := n.(type) {
	case *ast.File:
		for _, s := range node.Body {
			fn(s)
		}
	case *ast.OptionStmt:
		fn(node.Assignment)
	case *ast.BuiltinStmt:
	case *ast.TestStmt:
		fn(node.Assignment)
	case *ast.VariableAssgn:
		fn(node.Init)
	case *ast.MemberAssgn:
		fn(node.Member)
		fn(node.Init)
	case *ast.ExprStmt:
		fn(node.Expression)
	case *ast.ReturnStmt:
		fn(node.Argument)
	case *ast.FunctionExpr:
		for _, p := range node.Params {
			fn(p)
		}
		if node.Body.Expr != nil {
			fn(node.Body.Expr)
		} else if node.Body.Block != nil {
			for _, s := range node.Body.Block.Body {
				fn(s)
			}
		}
	case *ast.CallExpr:
		fn(node.Callee)
		for _, a := range node.Arguments {
			fn(a)
		}
	case *ast.PipeExpr:
		fn(node.Argument)
		fn(node.Call)
	case *ast.MemberExpr:
		fn(node.Object)
		fn(node.Property)
	case *ast.IndexExpr:
		fn(node.Array)
		fn(node.Index)
	case *ast.BinaryExpr:
		fn(node.Left)
		fn(node.Right)
	case *ast.UnaryExpr:
		fn(node.Argument)
	case *ast.LogicalExpr:
		fn(node.Left)
		fn(node.Right)
	case *ast.ConditionalExpr:
		fn(node.Test)
		fn(node.Consequent)
		fn(node.Alternate)
	case *ast.ParenExpr:
		fn(node.Expression)
	case *ast.ObjectExpr:
		if node.With != nil {
			fn(node.With.Source)
		}
		for _, p := range node.Properties {
			fn(p)
		}
	case *ast.Property:
		fn(node.Key)
		if node.Value != nil {
			fn(node.Value)
		}
	case *ast.ArrayExpr:
		for _, e := range node.Elements {
			fn(e)
		}
	case *ast.StringExpr:
		for _, p := range node.Parts {
			fn(p)
		}
	case *ast.InterpolatedPart:
		fn(node.Expression)
	}
}
