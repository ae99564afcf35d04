package semantic

// Visitor is a mutable tree walker hook pair. visit is called pre-order and
// may return false to skip the subtree; done is called post-order on every
// node visit descended into.
type Visitor interface {
	Visit(node Node) bool
	Done(node Node)
}

// WalkMut walks n in pre-order/post-order with v, descending into function
// parameters, block chains, call arguments, and a call's pipe slot, per
// spec.md §4.4.
func WalkMut(v Visitor, n Node) {
	if n == nil || !v.Visit(n) {
		return
	}
	switch node := n.(type) {
	case *Package:
		for _, f := range node.Files {
			WalkMut(v, f)
		}
	case *File:
		for _, s := range node.Body {
			WalkMut(v, s)
		}
	case *VariableAssgn:
		WalkMut(v, node.Init)
	case *MemberAssgn:
		WalkMut(v, node.Member)
		WalkMut(v, node.Init)
	case *OptionStmt:
		WalkMut(v, node.Assignment)
	case *BuiltinStmt:
		// MonoType is not itself a Node; nothing further to walk.
	case *TestStmt:
		WalkMut(v, node.Assignment)
	case *ExprStmt:
		WalkMut(v, node.Expression)
	case *ReturnStmt:
		WalkMut(v, node.Argument)
	case *ReturnBlock:
		WalkMut(v, node.Argument)
	case *VariableBlock:
		WalkMut(v, node.Assgn)
		WalkMut(v, node.Rest)
	case *ExprBlock:
		WalkMut(v, node.Stmt)
		WalkMut(v, node.Rest)
	case *IdentifierExpr:
	case *ArrayExpr:
		for _, e := range node.Elements {
			WalkMut(v, e)
		}
	case *Property:
		WalkMut(v, node.Value)
	case *ObjectExpr:
		if node.With != nil {
			WalkMut(v, node.With)
		}
		for _, p := range node.Properties {
			WalkMut(v, p)
		}
	case *MemberExpr:
		WalkMut(v, node.Object)
	case *IndexExpr:
		WalkMut(v, node.Array)
		WalkMut(v, node.Index)
	case *BinaryExpr:
		WalkMut(v, node.Left)
		WalkMut(v, node.Right)
	case *UnaryExpr:
		WalkMut(v, node.Argument)
	case *LogicalExpr:
		WalkMut(v, node.Left)
		WalkMut(v, node.Right)
	case *ConditionalExpr:
		WalkMut(v, node.Test)
		WalkMut(v, node.Consequent)
		WalkMut(v, node.Alternate)
	case *CallExpr:
		WalkMut(v, node.Callee)
		for _, a := range node.Arguments {
			WalkMut(v, a)
		}
		if node.Pipe != nil {
			WalkMut(v, node.Pipe)
		}
	case *FunctionExpr:
		for _, p := range node.Params {
			WalkMut(v, p)
		}
		WalkMut(v, node.Body)
	case *Param:
		if node.Default != nil {
			WalkMut(v, node.Default)
		}
	case *StringExpr:
		for _, p := range node.Parts {
			WalkMut(v, p)
		}
	case *TextPart:
	case *InterpolatedPart:
		WalkMut(v, node.Expression)
	case *DictExpr:
		for k, val := range node.Elements {
			WalkMut(v, k)
			WalkMut(v, val)
		}
	case *ExpandExpr:
		WalkMut(v, node.Argument)
	case *StringLit, *BooleanLit, *FloatLit, *IntegerLit, *UnsignedIntegerLit,
		*RegexpLit, *DurationLit, *DateTimeLit:
		// Scalar literals have no children.
	}
	v.Done(n)
}
