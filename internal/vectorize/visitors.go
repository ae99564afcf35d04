package vectorize

import "github.com/cwbudde/flowql/internal/semantic"

// fresheningVisitor implements step 3: every type-slot-carrying node in the
// cloned function gets a brand new type variable, so the clone's slots no
// longer alias identities from the original (unvectorized) function.
type fresheningVisitor struct {
	fresher *semantic.Fresher
}

func (*fresheningVisitor) Visit(semantic.Node) bool { return true }

func (v *fresheningVisitor) Done(n semantic.Node) {
	switch node := n.(type) {
	case *semantic.IdentifierExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.ArrayExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.ObjectExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.MemberExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.IndexExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.BinaryExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.UnaryExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.CallExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.FunctionExpr:
		node.Typ = v.fresher.FreshVar()
	case *semantic.DictExpr:
		node.Typ = v.fresher.FreshVar()
	}
}

// expandingVisitor implements step 4: every scalar-literal operand of a
// BinaryExpr is wrapped in an ExpandExpr carrying its own fresh type slot,
// marking the point where that literal must broadcast to a vector.
type expandingVisitor struct {
	fresher *semantic.Fresher
}

func (*expandingVisitor) Visit(semantic.Node) bool { return true }

func (v *expandingVisitor) Done(n semantic.Node) {
	bin, ok := n.(*semantic.BinaryExpr)
	if !ok {
		return
	}
	bin.Left = v.maybeExpand(bin.Left)
	bin.Right = v.maybeExpand(bin.Right)
}

func (v *expandingVisitor) maybeExpand(e semantic.Expression) semantic.Expression {
	if !isScalarLiteral(e) {
		return e
	}
	return &semantic.ExpandExpr{Argument: e, Typ: v.fresher.FreshVar()}
}

func isScalarLiteral(e semantic.Expression) bool {
	switch e.(type) {
	case *semantic.StringLit, *semantic.BooleanLit, *semantic.FloatLit,
		*semantic.IntegerLit, *semantic.UnsignedIntegerLit, *semantic.RegexpLit,
		*semantic.DurationLit, *semantic.DateTimeLit:
		return true
	default:
		return false
	}
}
