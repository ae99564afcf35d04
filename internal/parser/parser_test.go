package parser

import (
	"strings"
	"testing"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/gkampitakis/go-snaps/snaps"
)

func TestParseFile_Snapshots(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"identity_record_function", `f = (r) => ({a: r.a, b: r.b})`},
		{"pipe_forward_chain", `data |> filter(fn: (r) => r.a > 0) |> map(fn: (r) => r)`},
		{"object_with", `base = {a: 1, b: 2}
ext = {base with b: 3}`},
		{"implicit_properties", `a = 1
b = 2
obj = {a, b}`},
		{"conditional_and_logical", `x = if a and b or not c then 1 else 2`},
		{"duration_rollup", `d = 1h30m`},
		{"builtin_and_option", `builtin now : () => time
option task = {name: "x", every: 1h}`},
		{"string_interpolation", `s = "hello ${name}, you are ${age} years old"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			file := ParseFile(tc.source, tc.name+".flux")
			snaps.MatchSnapshot(t, tc.name, ast.Sprint(file))
		})
	}
}

func TestParseFile_ErrorRecovery(t *testing.T) {
	cases := []struct {
		name      string
		source    string
		wantError string
	}{
		{
			// spec.md §8.3 scenario 5, verbatim.
			name:      "unterminated_interpolation",
			source:    `fn = (a) => "${a}`,
			wantError: "got unexpected token in string expression @1:18-1:18: EOF",
		},
		{
			name:      "integer_overflow",
			source:    `x = 99999999999999999999`,
			wantError: "value out of range",
		},
		{
			name:      "pipe_destination_not_a_call",
			source:    `x |> 1`,
			wantError: "pipe destination must be a function call",
		},
		{
			name:      "missing_closing_paren",
			source:    `f = (a, b => a + b`,
			wantError: "expected RPAREN, got ARROW",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			file := ParseFile(tc.source, tc.name+".flux")
			if !containsError(file, tc.wantError) {
				t.Fatalf("expected an error containing %q in:\n%s", tc.wantError, ast.Sprint(file))
			}
		})
	}
}

// containsError walks the tree looking for any node whose error list
// contains a message containing want.
func containsError(n ast.Node, want string) bool {
	found := false
	var walk func(ast.Node)
	walk = func(node ast.Node) {
		if node == nil || found {
			return
		}
		for _, e := range node.ErrorList() {
			if strings.Contains(e, want) {
				found = true
				return
			}
		}
		walkChildrenForTest(node, walk)
	}
	walk(n)
	return found
}

func walkChildrenForTest(n ast.Node, fn func(ast.Node)) {
	switch node := n.(type) {
	case *ast.File:
		for _, s := range node.Body {
			fn(s)
		}
	case *ast.VariableAssgn:
		fn(node.Init)
	case *ast.ExprStmt:
		fn(node.Expression)
	case *ast.OptionStmt:
		fn(node.Assignment)
	case *ast.BuiltinStmt:
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
	case *ast.BinaryExpr:
		fn(node.Left)
		fn(node.Right)
	case *ast.ParenExpr:
		fn(node.Expression)
	case *ast.StringExpr:
		for _, p := range node.Parts {
			fn(p)
		}
	case *ast.InterpolatedPart:
		fn(node.Expression)
	case *ast.Property:
		fn(node.Key)
		if node.Value != nil {
			fn(node.Value)
		}
	case *ast.ObjectExpr:
		for _, p := range node.Properties {
			fn(p)
		}
	}
}
