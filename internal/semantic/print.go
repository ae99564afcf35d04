package semantic

import (
	"fmt"
	"strings"
)

// Sprint renders n as an indented debug tree, the semantic-graph
// counterpart of ast.Sprint — each type-slot-carrying node shows its
// current MonoType alongside its shape.
func Sprint(n Node) string {
	var b strings.Builder
	sprintNode(&b, n, 0)
	return b.String()
}

func indent(b *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
}

func sprintNode(b *strings.Builder, n Node, depth int) {
	if n == nil {
		indent(b, depth)
		b.WriteString("<nil>\n")
		return
	}
	indent(b, depth)
	switch node := n.(type) {
	case *Package:
		fmt.Fprintf(b, "Package %q\n", node.Package)
		for _, f := range node.Files {
			sprintNode(b, f, depth+1)
		}
	case *File:
		fmt.Fprintf(b, "File %q\n", node.Name)
		for _, s := range node.Body {
			sprintNode(b, s, depth+1)
		}
	case *VariableAssgn:
		fmt.Fprintf(b, "VariableAssgn %s =\n", node.Name)
		sprintNode(b, node.Init, depth+1)
	case *MemberAssgn:
		b.WriteString("MemberAssgn\n")
		sprintNode(b, node.Member, depth+1)
		sprintNode(b, node.Init, depth+1)
	case *OptionStmt:
		b.WriteString("OptionStmt\n")
		sprintNode(b, node.Assignment, depth+1)
	case *BuiltinStmt:
		fmt.Fprintf(b, "BuiltinStmt %s : %v\n", node.Name, node.Ty)
	case *TestStmt:
		b.WriteString("TestStmt\n")
		sprintNode(b, node.Assignment, depth+1)
	case *ExprStmt:
		b.WriteString("ExprStmt\n")
		sprintNode(b, node.Expression, depth+1)
	case *ReturnStmt:
		b.WriteString("ReturnStmt\n")
		sprintNode(b, node.Argument, depth+1)
	case *ReturnBlock:
		b.WriteString("Return\n")
		sprintNode(b, node.Argument, depth+1)
	case *VariableBlock:
		fmt.Fprintf(b, "Variable %s =\n", node.Assgn.Name)
		sprintNode(b, node.Assgn.Init, depth+1)
		sprintNode(b, node.Rest, depth+1)
	case *ExprBlock:
		b.WriteString("Expr\n")
		sprintNode(b, node.Stmt, depth+1)
		sprintNode(b, node.Rest, depth+1)
	case *IdentifierExpr:
		fmt.Fprintf(b, "IdentifierExpr %s : %v\n", node.Name, node.Typ)
	case *ArrayExpr:
		fmt.Fprintf(b, "ArrayExpr : %v\n", node.Typ)
		for _, e := range node.Elements {
			sprintNode(b, e, depth+1)
		}
	case *ObjectExpr:
		fmt.Fprintf(b, "ObjectExpr : %v\n", node.Typ)
		if node.With != nil {
			indent(b, depth+1)
			fmt.Fprintf(b, "with %s\n", node.With.Name)
		}
		for _, p := range node.Properties {
			sprintNode(b, p, depth+1)
		}
	case *Property:
		fmt.Fprintf(b, "Property %s\n", node.Key)
		sprintNode(b, node.Value, depth+1)
	case *MemberExpr:
		fmt.Fprintf(b, "MemberExpr .%s : %v\n", node.Property, node.Typ)
		sprintNode(b, node.Object, depth+1)
	case *IndexExpr:
		fmt.Fprintf(b, "IndexExpr : %v\n", node.Typ)
		sprintNode(b, node.Array, depth+1)
		sprintNode(b, node.Index, depth+1)
	case *BinaryExpr:
		fmt.Fprintf(b, "BinaryExpr %s : %v\n", node.Operator, node.Typ)
		sprintNode(b, node.Left, depth+1)
		sprintNode(b, node.Right, depth+1)
	case *UnaryExpr:
		fmt.Fprintf(b, "UnaryExpr %s : %v\n", node.Operator, node.Typ)
		sprintNode(b, node.Argument, depth+1)
	case *LogicalExpr:
		fmt.Fprintf(b, "LogicalExpr %s\n", node.Operator)
		sprintNode(b, node.Left, depth+1)
		sprintNode(b, node.Right, depth+1)
	case *ConditionalExpr:
		b.WriteString("ConditionalExpr\n")
		sprintNode(b, node.Test, depth+1)
		sprintNode(b, node.Consequent, depth+1)
		sprintNode(b, node.Alternate, depth+1)
	case *CallExpr:
		fmt.Fprintf(b, "CallExpr : %v\n", node.Typ)
		sprintNode(b, node.Callee, depth+1)
		for _, a := range node.Arguments {
			sprintNode(b, a, depth+1)
		}
		if node.Pipe != nil {
			indent(b, depth+1)
			b.WriteString("pipe:\n")
			sprintNode(b, node.Pipe, depth+2)
		}
	case *FunctionExpr:
		fmt.Fprintf(b, "FunctionExpr : %v\n", node.Typ)
		for _, p := range node.Params {
			indent(b, depth+1)
			fmt.Fprintf(b, "Param %s (pipe=%v)\n", p.Name, p.IsPipe)
			if p.Default != nil {
				sprintNode(b, p.Default, depth+2)
			}
		}
		sprintNode(b, node.Body, depth+1)
	case *StringExpr:
		b.WriteString("StringExpr\n")
		for _, p := range node.Parts {
			sprintNode(b, p, depth+1)
		}
	case *TextPart:
		fmt.Fprintf(b, "TextPart %q\n", node.Value)
	case *InterpolatedPart:
		b.WriteString("InterpolatedPart\n")
		sprintNode(b, node.Expression, depth+1)
	case *DictExpr:
		fmt.Fprintf(b, "DictExpr : %v\n", node.Typ)
	case *ExpandExpr:
		fmt.Fprintf(b, "ExpandExpr : %v\n", node.Typ)
		sprintNode(b, node.Argument, depth+1)
	case *StringLit:
		fmt.Fprintf(b, "StringLit %q\n", node.Value)
	case *BooleanLit:
		fmt.Fprintf(b, "BooleanLit %v\n", node.Value)
	case *FloatLit:
		fmt.Fprintf(b, "FloatLit %g\n", node.Value)
	case *IntegerLit:
		fmt.Fprintf(b, "IntegerLit %d\n", node.Value)
	case *UnsignedIntegerLit:
		fmt.Fprintf(b, "UnsignedIntegerLit %d\n", node.Value)
	case *RegexpLit:
		fmt.Fprintf(b, "RegexpLit /%s/\n", node.Value)
	case *DurationLit:
		fmt.Fprintf(b, "DurationLit %v\n", node.Values)
	case *DateTimeLit:
		fmt.Fprintf(b, "DateTimeLit %s\n", node.Value)
	default:
		fmt.Fprintf(b, "%T\n", n)
	}
}
