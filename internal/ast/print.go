package ast

import (
	"fmt"
	"strings"
)

// Sprint renders node as an indented debug tree, the way a language
// server's "show AST" command would. It is a convenience for tooling and
// tests, not part of the node's identity.
func Sprint(node Node) string {
	var b strings.Builder
	sprintNode(&b, node, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func sprintErrors(b *strings.Builder, n Node, depth int) {
	for _, e := range n.ErrorList() {
		indent(b, depth)
		fmt.Fprintf(b, "! %s\n", e)
	}
}

func sprintNode(b *strings.Builder, node Node, depth int) {
	if node == nil {
		indent(b, depth)
		b.WriteString("<nil>\n")
		return
	}
	indent(b, depth)
	switch n := node.(type) {
	case *Package:
		fmt.Fprintf(b, "Package %q\n", n.Package)
		for _, f := range n.Files {
			sprintNode(b, f, depth+1)
		}
	case *File:
		fmt.Fprintf(b, "File %q (%d statements)\n", n.Name, len(n.Body))
		sprintErrors(b, n, depth+1)
		for _, s := range n.Body {
			sprintNode(b, s, depth+1)
		}
	case *OptionStmt:
		b.WriteString("OptionStmt\n")
		sprintNode(b, n.Assignment, depth+1)
	case *BuiltinStmt:
		fmt.Fprintf(b, "BuiltinStmt %s\n", n.ID.Name)
	case *TestStmt:
		b.WriteString("TestStmt\n")
		sprintNode(b, n.Assignment, depth+1)
	case *VariableAssgn:
		fmt.Fprintf(b, "VariableAssgn %s =\n", n.ID.Name)
		sprintErrors(b, n, depth+1)
		sprintNode(b, n.Init, depth+1)
	case *MemberAssgn:
		b.WriteString("MemberAssgn\n")
		sprintNode(b, n.Member, depth+1)
		sprintNode(b, n.Init, depth+1)
	case *ExprStmt:
		b.WriteString("ExprStmt\n")
		sprintNode(b, n.Expression, depth+1)
	case *ReturnStmt:
		b.WriteString("ReturnStmt\n")
		sprintNode(b, n.Argument, depth+1)
	case *BadStmt:
		fmt.Fprintf(b, "BadStmt %q\n", n.Text)
		sprintErrors(b, n, depth+1)
	case *FunctionExpr:
		b.WriteString("FunctionExpr\n")
		sprintErrors(b, n, depth+1)
		for _, p := range n.Params {
			sprintNode(b, p, depth+1)
		}
		if n.Body.Expr != nil {
			sprintNode(b, n.Body.Expr, depth+1)
		} else if n.Body.Block != nil {
			for _, s := range n.Body.Block.Body {
				sprintNode(b, s, depth+1)
			}
		}
	case *CallExpr:
		b.WriteString("CallExpr\n")
		sprintErrors(b, n, depth+1)
		sprintNode(b, n.Callee, depth+1)
		for _, a := range n.Arguments {
			sprintNode(b, a, depth+1)
		}
	case *PipeExpr:
		b.WriteString("PipeExpr\n")
		sprintNode(b, n.Argument, depth+1)
		sprintNode(b, n.Call, depth+1)
	case *MemberExpr:
		b.WriteString("MemberExpr\n")
		sprintNode(b, n.Object, depth+1)
		sprintNode(b, n.Property, depth+1)
	case *IndexExpr:
		b.WriteString("IndexExpr\n")
		sprintNode(b, n.Array, depth+1)
		sprintNode(b, n.Index, depth+1)
	case *BinaryExpr:
		fmt.Fprintf(b, "BinaryExpr %s\n", n.Operator)
		sprintNode(b, n.Left, depth+1)
		sprintNode(b, n.Right, depth+1)
	case *UnaryExpr:
		fmt.Fprintf(b, "UnaryExpr %s\n", n.Operator)
		sprintNode(b, n.Argument, depth+1)
	case *LogicalExpr:
		fmt.Fprintf(b, "LogicalExpr %s\n", n.Operator)
		sprintNode(b, n.Left, depth+1)
		sprintNode(b, n.Right, depth+1)
	case *ConditionalExpr:
		b.WriteString("ConditionalExpr\n")
		sprintNode(b, n.Test, depth+1)
		sprintNode(b, n.Consequent, depth+1)
		sprintNode(b, n.Alternate, depth+1)
	case *ParenExpr:
		b.WriteString("ParenExpr\n")
		sprintNode(b, n.Expression, depth+1)
	case *ObjectExpr:
		b.WriteString("ObjectExpr\n")
		sprintErrors(b, n, depth+1)
		if n.With != nil {
			indent(b, depth+1)
			fmt.Fprintf(b, "with %s\n", n.With.Source.Name)
		}
		for _, p := range n.Properties {
			sprintNode(b, p, depth+1)
		}
	case *Property:
		b.WriteString("Property\n")
		sprintErrors(b, n, depth+1)
		sprintNode(b, n.Key, depth+1)
		if n.Value != nil {
			sprintNode(b, n.Value, depth+1)
		}
	case *ArrayExpr:
		b.WriteString("ArrayExpr\n")
		for _, e := range n.Elements {
			sprintNode(b, e, depth+1)
		}
	case *StringExpr:
		b.WriteString("StringExpr\n")
		sprintErrors(b, n, depth+1)
		for _, p := range n.Parts {
			sprintNode(b, p, depth+1)
		}
	case *TextPart:
		fmt.Fprintf(b, "TextPart %q\n", n.Value)
	case *InterpolatedPart:
		b.WriteString("InterpolatedPart\n")
		sprintNode(b, n.Expression, depth+1)
	case *Identifier:
		fmt.Fprintf(b, "Identifier %s\n", n.Name)
	case *StringLit:
		fmt.Fprintf(b, "StringLit %q\n", n.Value)
	case *BooleanLit:
		fmt.Fprintf(b, "BooleanLit %v\n", n.Value)
	case *FloatLit:
		fmt.Fprintf(b, "FloatLit %g\n", n.Value)
	case *IntegerLit:
		fmt.Fprintf(b, "IntegerLit %d\n", n.Value)
		sprintErrors(b, n, depth+1)
	case *UnsignedIntegerLit:
		fmt.Fprintf(b, "UnsignedIntegerLit %d\n", n.Value)
	case *RegexpLit:
		fmt.Fprintf(b, "RegexpLit /%s/\n", n.Value)
		sprintErrors(b, n, depth+1)
	case *DurationLit:
		fmt.Fprintf(b, "DurationLit %v\n", n.Values)
	case *DateTimeLit:
		fmt.Fprintf(b, "DateTimeLit %s\n", n.Value)
	case *PipeLit:
		b.WriteString("PipeLit <-\n")
	case *BadExpr:
		fmt.Fprintf(b, "BadExpr %q\n", n.Text)
		sprintErrors(b, n, depth+1)
	default:
		fmt.Fprintf(b, "%T\n", n)
	}
}
