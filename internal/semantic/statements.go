package semantic

import "github.com/cwbudde/flowql/internal/ast"

// Assignment is the shared target of OptionStmt: either a plain variable
// binding or a member assignment (`option a.b = ...`).
type Assignment interface {
	Node
	assignmentNode()
}

// VariableAssgn binds Init to Name. Polytype is left nil until inference
// generalizes the variable's MonoType into a scheme; nothing in this
// package populates it.
type VariableAssgn struct {
	ast.BaseNode
	Name     string
	Init     Expression
	Polytype interface{}
}

func (*VariableAssgn) node()           {}
func (*VariableAssgn) statementNode()  {}
func (*VariableAssgn) assignmentNode() {}

// MemberAssgn assigns Init to an object member, `a.b = ...`.
type MemberAssgn struct {
	ast.BaseNode
	Member *MemberExpr
	Init   Expression
}

func (*MemberAssgn) node()           {}
func (*MemberAssgn) statementNode()  {}
func (*MemberAssgn) assignmentNode() {}

// OptionStmt overrides a built-in or previously declared option.
type OptionStmt struct {
	ast.BaseNode
	Assignment Assignment
}

func (*OptionStmt) node()          {}
func (*OptionStmt) statementNode() {}

// BuiltinStmt declares an external binding's type without supplying a body.
type BuiltinStmt struct {
	ast.BaseNode
	Name string
	Ty   MonoType
}

func (*BuiltinStmt) node()          {}
func (*BuiltinStmt) statementNode() {}

// TestStmt is a named assertion binding, identical in shape to
// VariableAssgn but tagged separately so a test runner can find them.
type TestStmt struct {
	ast.BaseNode
	Assignment *VariableAssgn
}

func (*TestStmt) node()          {}
func (*TestStmt) statementNode() {}

// ExprStmt is an expression evaluated for its side effect (or its pipeline
// result, at the top level of a file).
type ExprStmt struct {
	ast.BaseNode
	Expression Expression
}

func (*ExprStmt) node()          {}
func (*ExprStmt) statementNode() {}

// ReturnStmt is a top-level return; only meaningful inside a converted
// function Block chain, never as a bare file-level statement in practice,
// but kept symmetric with the AST's statement set.
type ReturnStmt struct {
	ast.BaseNode
	Argument Expression
}

func (*ReturnStmt) node()          {}
func (*ReturnStmt) statementNode() {}

// Block is a function body, canonicalized at conversion time into a
// left-nested chain terminated by a Return: Variable(assgn, rest) or
// Expr(stmt, rest), bottoming out at Return(argument). A bare expression
// body (no braces in the surface syntax) converts directly to a
// single ReturnBlock.
type Block interface {
	Node
	blockNode()
}

// ReturnBlock is the chain terminator.
type ReturnBlock struct {
	ast.BaseNode
	Argument Expression
}

func (*ReturnBlock) node()      {}
func (*ReturnBlock) blockNode() {}

// VariableBlock is one `name = expr` statement followed by the rest of the
// block.
type VariableBlock struct {
	ast.BaseNode
	Assgn *VariableAssgn
	Rest  Block
}

func (*VariableBlock) node()      {}
func (*VariableBlock) blockNode() {}

// ExprBlock is one bare-expression statement followed by the rest of the
// block.
type ExprBlock struct {
	ast.BaseNode
	Stmt Expression
	Rest Block
}

func (*ExprBlock) node()      {}
func (*ExprBlock) blockNode() {}
