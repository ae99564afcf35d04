package semantic

import "github.com/cwbudde/flowql/internal/ast"

// IdentifierExpr is a reference to a bound name. It carries a type slot.
type IdentifierExpr struct {
	ast.BaseNode
	Name string
	Typ  MonoType
}

func (*IdentifierExpr) node()           {}
func (*IdentifierExpr) expressionNode() {}

// ArrayExpr is an array literal. It carries a type slot.
type ArrayExpr struct {
	ast.BaseNode
	Elements []Expression
	Typ      MonoType
}

func (*ArrayExpr) node()           {}
func (*ArrayExpr) expressionNode() {}

// Property is one `key: value` entry of an ObjectExpr. Converting an AST
// Property whose Value was implicit (bare `key`) materializes Value into an
// IdentifierExpr referencing key, so every semantic Property has a Value.
type Property struct {
	ast.BaseNode
	Key   string
	Value Expression
}

func (*Property) node() {}

// ObjectExpr is a record literal, optionally extending With. Keys are
// always plain names here; the AST's PropertyKey variants (string literal
// keys) are normalized to their name during conversion. It carries a type
// slot.
type ObjectExpr struct {
	ast.BaseNode
	With       *IdentifierExpr
	Properties []*Property
	Typ        MonoType
}

func (*ObjectExpr) node()           {}
func (*ObjectExpr) expressionNode() {}

// MemberExpr accesses Property on Object. Property is a plain name: the
// AST's PropertyKey variants collapse to a string here too. It carries a
// type slot.
type MemberExpr struct {
	ast.BaseNode
	Object   Expression
	Property string
	Typ      MonoType
}

func (*MemberExpr) node()           {}
func (*MemberExpr) expressionNode() {}

// IndexExpr indexes Array by Index. It carries a type slot.
type IndexExpr struct {
	ast.BaseNode
	Array Expression
	Index Expression
	Typ   MonoType
}

func (*IndexExpr) node()           {}
func (*IndexExpr) expressionNode() {}

// BinaryExpr is an arithmetic or comparison operator application. It
// carries a type slot.
type BinaryExpr struct {
	ast.BaseNode
	Operator string
	Left     Expression
	Right    Expression
	Typ      MonoType
}

func (*BinaryExpr) node()           {}
func (*BinaryExpr) expressionNode() {}

// UnaryExpr is a prefix operator application. It carries a type slot.
type UnaryExpr struct {
	ast.BaseNode
	Operator string
	Argument Expression
	Typ      MonoType
}

func (*UnaryExpr) node()           {}
func (*UnaryExpr) expressionNode() {}

// LogicalExpr is `and`/`or`. Unlike BinaryExpr it carries no type slot: its
// result is always bool and inference does not need to solve for it.
type LogicalExpr struct {
	ast.BaseNode
	Operator string
	Left     Expression
	Right    Expression
}

func (*LogicalExpr) node()           {}
func (*LogicalExpr) expressionNode() {}

// ConditionalExpr is `if test then consequent else alternate`. It carries
// no type slot of its own; its type is unified from its branches during
// inference.
type ConditionalExpr struct {
	ast.BaseNode
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (*ConditionalExpr) node()           {}
func (*ConditionalExpr) expressionNode() {}

// CallExpr is a function application. PipeExpr has no surviving node of its
// own: conversion folds `a |> f(...)` into a CallExpr with Pipe set to a.
// The AST's single-ObjectExpr call-argument convention collapses here too:
// Arguments is the flattened property list of that object, not a nested
// ObjectExpr. It carries a type slot.
type CallExpr struct {
	ast.BaseNode
	Callee    Expression
	Arguments []*Property
	Pipe      Expression
	Typ       MonoType
}

func (*CallExpr) node()           {}
func (*CallExpr) expressionNode() {}

// Param is one function parameter. IsPipe marks the parameter that received
// the surface `<-` pipe-literal default; when true, Default is always nil
// (the pipe-literal marker itself does not survive conversion).
type Param struct {
	ast.BaseNode
	Name    string
	Default Expression
	IsPipe  bool
}

func (*Param) node() {}

// FunctionExpr is a function literal. Its surface Block/bare-expression
// body is canonicalized into a single Block chain. It carries a type slot.
type FunctionExpr struct {
	ast.BaseNode
	Params []*Param
	Body   Block
	Typ    MonoType
}

func (*FunctionExpr) node()           {}
func (*FunctionExpr) expressionNode() {}

// StringExprPart is one piece of an interpolated string.
type StringExprPart interface {
	Node
	stringExprPartNode()
}

// TextPart is a literal run of text within a StringExpr.
type TextPart struct {
	ast.BaseNode
	Value string
}

func (*TextPart) node()               {}
func (*TextPart) stringExprPartNode() {}

// InterpolatedPart is a `${...}` expression embedded in a StringExpr.
type InterpolatedPart struct {
	ast.BaseNode
	Expression Expression
}

func (*InterpolatedPart) node()               {}
func (*InterpolatedPart) stringExprPartNode() {}

// StringExpr is an interpolated string literal. Plain (non-interpolated)
// strings convert to a StringLit instead; this node only exists when the
// surface StringExpr had at least one interpolated part. Like other
// literal-shaped expressions it carries no type slot: its type is always
// string.
type StringExpr struct {
	ast.BaseNode
	Parts []StringExprPart
}

func (*StringExpr) node()           {}
func (*StringExpr) expressionNode() {}

// DictExpr is a dictionary literal. Nothing in this grammar's surface
// syntax produces one; the node exists so the walker's and the type-slot
// visitors' node-kind switches cover upstream grammars that do have dict
// literals. It carries a type slot.
type DictExpr struct {
	ast.BaseNode
	Elements map[Expression]Expression
	Typ      MonoType
}

func (*DictExpr) node()           {}
func (*DictExpr) expressionNode() {}

// ExpandExpr wraps a scalar-literal BinaryExpr operand during
// vectorization, marking the point where a scalar must broadcast against a
// vector. It carries its own fresh type slot.
type ExpandExpr struct {
	ast.BaseNode
	Argument Expression
	Typ      MonoType
}

func (*ExpandExpr) node()           {}
func (*ExpandExpr) expressionNode() {}
