package ast

// FunctionExpr is a function literal: `(params) => body`.
type FunctionExpr struct {
	BaseNode
	Params []*Property
	Body   FunctionBody
}

func (*FunctionExpr) expressionNode() {}

// CallExpr is a function call `callee(args)`. The parser collects the
// named arguments into a single ObjectExpr, so a parsed call has zero or
// one Arguments; the semantic converter rejects a CallExpr that carries
// more than one.
type CallExpr struct {
	BaseNode
	Callee    Expression
	Arguments []Expression
}

func (*CallExpr) expressionNode() {}

// PipeExpr is `argument |> call`. It exists only in the AST: the semantic
// converter folds it into the destination CallExpr's pipe slot.
type PipeExpr struct {
	BaseNode
	Argument Expression
	Call     *CallExpr
}

func (*PipeExpr) expressionNode() {}

// MemberExpr is `object.property`.
type MemberExpr struct {
	BaseNode
	Object   Expression
	Property PropertyKey
}

func (*MemberExpr) expressionNode() {}

// IndexExpr is `array[index]`.
type IndexExpr struct {
	BaseNode
	Array Expression
	Index Expression
}

func (*IndexExpr) expressionNode() {}

// BinaryExpr is a binary arithmetic/comparison operation.
type BinaryExpr struct {
	BaseNode
	Operator string
	Left     Expression
	Right    Expression
}

func (*BinaryExpr) expressionNode() {}

// UnaryExpr is a prefix operator (`-x`, `not x`, `exists x`).
type UnaryExpr struct {
	BaseNode
	Operator string
	Argument Expression
}

func (*UnaryExpr) expressionNode() {}

// LogicalExpr is `and`/`or`. Kept distinct from BinaryExpr because its
// type is determined structurally (always bool) rather than carrying its
// own type slot once lowered.
type LogicalExpr struct {
	BaseNode
	Operator string
	Left     Expression
	Right    Expression
}

func (*LogicalExpr) expressionNode() {}

// ConditionalExpr is the expression-level ternary `if c then a else b`.
type ConditionalExpr struct {
	BaseNode
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (*ConditionalExpr) expressionNode() {}

// ParenExpr is a parenthesized expression, kept in the AST (unlike most
// parsers) because spec.md's Non-goals exclude speculative re-derivation
// of source text, and a bare pass-through would lose the paren's own
// location for tooling.
type ParenExpr struct {
	BaseNode
	Expression Expression
}

func (*ParenExpr) expressionNode() {}

// PropertyKey is either an Identifier or a StringLit used as an object
// property key.
type PropertyKey interface {
	Node
	propertyKeyNode()
}

// Property is a single `key: value` (or implicit `key`) entry of an
// ObjectExpr or a FunctionExpr parameter list.
type Property struct {
	BaseNode
	Key   PropertyKey
	Value Expression // nil for an implicit property (`{a}` means `{a: a}`)
}

// WithSource names the `with` clause's source identifier.
type WithSource struct {
	BaseNode
	Source *Identifier
}

// ObjectExpr is a record literal, optionally extending an existing record
// via `with`.
type ObjectExpr struct {
	BaseNode
	With       *WithSource
	Properties []*Property
}

func (*ObjectExpr) expressionNode() {}

// ArrayExpr is an array literal.
type ArrayExpr struct {
	BaseNode
	Elements []Expression
}

func (*ArrayExpr) expressionNode() {}

// StringExprPart is either a TextPart or an InterpolatedPart of a
// StringExpr.
type StringExprPart interface {
	Node
	stringExprPartNode()
}

// TextPart is a literal run of text within an interpolated string.
type TextPart struct {
	BaseNode
	Value string
}

func (*TextPart) stringExprPartNode() {}

// InterpolatedPart is a `${ expr }` span within an interpolated string.
type InterpolatedPart struct {
	BaseNode
	Expression Expression
}

func (*InterpolatedPart) stringExprPartNode() {}

// StringExpr is a string literal containing one or more interpolated
// expressions.
type StringExpr struct {
	BaseNode
	Parts []StringExprPart
}

func (*StringExpr) expressionNode() {}

// BadExpr is a recovery placeholder for an expression the parser could not
// recognize; Text holds the offending lexeme.
type BadExpr struct {
	BaseNode
	Text string
}

func (*BadExpr) expressionNode() {}
