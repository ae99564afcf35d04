package parser

import (
	"fmt"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/token"
)

func (p *Parser) parseFile() *ast.File {
	start := p.cur.Offset
	f := &ast.File{}

	if p.curIs(token.PACKAGE) {
		f.Package = p.parsePackageClause()
	}
	for p.curIs(token.IMPORT) {
		f.Imports = append(f.Imports, p.parseImportDeclaration())
	}
	for !p.curIs(token.EOF) {
		f.Body = append(f.Body, p.parseStatement())
	}

	f.Loc = p.span(start)
	return f
}

func (p *Parser) parsePackageClause() *ast.PackageClause {
	start := p.cur.Offset
	p.next() // consume 'package'
	name := p.parseIdentifier()
	return &ast.PackageClause{BaseNode: p.base(start), Name: name}
}

func (p *Parser) parseImportDeclaration() *ast.ImportDeclaration {
	start := p.cur.Offset
	p.next() // consume 'import'
	decl := &ast.ImportDeclaration{}

	if p.curIs(token.IDENT) {
		decl.As = p.parseIdentifier()
	}
	if p.curIs(token.STRING) {
		decl.Path = p.parseStringLit()
	} else {
		decl.BaseNode = p.base(start)
		decl.AddError(fmt.Sprintf("expected STRING, got %s", p.cur.Kind))
		return decl
	}
	decl.Loc = p.span(start)
	return decl
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Kind {
	case token.OPTION:
		return p.parseOptionStatement()
	case token.BUILTIN:
		return p.parseBuiltinStatement()
	case token.TEST:
		return p.parseTestStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.IDENT:
		if p.peekIs(token.ASSIGN) {
			return p.parseVariableAssignment()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVariableAssignment() *ast.VariableAssgn {
	start := p.cur.Offset
	id := p.parseIdentifier()
	stmt := &ast.VariableAssgn{ID: id}
	if p.curIs(token.ASSIGN) {
		p.next()
	} else {
		stmt.AddError(fmt.Sprintf("expected ASSIGN, got %s", p.cur.Kind))
	}
	stmt.Init = p.parseExpression(lowest)
	stmt.Loc = p.span(start)
	return stmt
}

// parseAssignment parses the shared `option` target: either a plain
// `name = expr` variable assignment or a `name.member = expr` member
// assignment.
func (p *Parser) parseAssignment() ast.Assignment {
	start := p.cur.Offset
	id := p.parseIdentifier()
	var object ast.Expression = id
	for p.curIs(token.DOT) {
		object = p.parseMemberAccess(object, start)
	}
	if member, ok := object.(*ast.MemberExpr); ok {
		ma := &ast.MemberAssgn{Member: member}
		if p.curIs(token.ASSIGN) {
			p.next()
		} else {
			ma.AddError(fmt.Sprintf("expected ASSIGN, got %s", p.cur.Kind))
		}
		ma.Init = p.parseExpression(lowest)
		ma.Loc = p.span(start)
		return ma
	}
	va := &ast.VariableAssgn{ID: id}
	if p.curIs(token.ASSIGN) {
		p.next()
	} else {
		va.AddError(fmt.Sprintf("expected ASSIGN, got %s", p.cur.Kind))
	}
	va.Init = p.parseExpression(lowest)
	va.Loc = p.span(start)
	return va
}

func (p *Parser) parseOptionStatement() *ast.OptionStmt {
	start := p.cur.Offset
	p.next() // consume 'option'
	assign := p.parseAssignment()
	return &ast.OptionStmt{BaseNode: p.base(start), Assignment: assign}
}

func (p *Parser) parseBuiltinStatement() *ast.BuiltinStmt {
	start := p.cur.Offset
	p.next() // consume 'builtin'
	id := p.parseIdentifier()
	stmt := &ast.BuiltinStmt{ID: id}
	if p.curIs(token.COLON) {
		p.next()
		stmt.Ty = p.parseMonoType()
	} else {
		stmt.BaseNode = p.base(start)
		stmt.AddError(fmt.Sprintf("expected COLON, got %s", p.cur.Kind))
		return stmt
	}
	stmt.Loc = p.span(start)
	return stmt
}

func (p *Parser) parseTestStatement() *ast.TestStmt {
	start := p.cur.Offset
	p.next() // consume 'test'
	assign := p.parseVariableAssignment()
	return &ast.TestStmt{BaseNode: p.base(start), Assignment: assign}
}

func (p *Parser) parseReturnStatement() *ast.ReturnStmt {
	start := p.cur.Offset
	p.next() // consume 'return'
	arg := p.parseExpression(lowest)
	return &ast.ReturnStmt{BaseNode: p.base(start), Argument: arg}
}

func (p *Parser) parseExpressionStatement() *ast.ExprStmt {
	start := p.cur.Offset
	expr := p.parseExpression(lowest)
	return &ast.ExprStmt{BaseNode: p.base(start), Expression: expr}
}
