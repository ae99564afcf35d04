package parser

import (
	"fmt"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/token"
)

var basicTypeNames = map[string]bool{
	"bool": true, "int": true, "uint": true, "float": true,
	"string": true, "duration": true, "time": true, "regexp": true, "bytes": true,
}

// parseMonoType parses a type expression, as seen on the right of a
// `builtin name : <type>` declaration's colon.
func (p *Parser) parseMonoType() ast.MonoType {
	start := p.cur.Offset
	switch p.cur.Kind {
	case token.LBRACK:
		p.next()
		elem := p.parseMonoType()
		at := &ast.ArrayType{Element: elem}
		if p.curIs(token.RBRACK) {
			p.next()
		} else {
			at.AddError(fmt.Sprintf("expected RBRACK, got %s", p.cur.Kind))
		}
		at.Loc = p.span(start)
		return at
	case token.LBRACE:
		return p.parseRecordType()
	case token.LPAREN:
		return p.parseFunctionType()
	case token.IDENT:
		name := p.parseIdentifier()
		if basicTypeNames[name.Name] {
			return &ast.BasicType{BaseNode: p.base(start), Name: name}
		}
		return &ast.TvarType{BaseNode: p.base(start), Name: name}
	default:
		badName := &ast.Identifier{Name: "<invalid>"}
		bad := &ast.BasicType{Name: badName}
		bad.AddError(fmt.Sprintf("invalid token for type expression: %s", p.cur.Kind))
		if !p.curIs(token.EOF) {
			p.next()
		}
		bad.Loc = p.span(start)
		badName.Loc = bad.Loc
		return bad
	}
}

func (p *Parser) parseRecordType() *ast.RecordType {
	start := p.cur.Offset
	p.next() // consume '{'
	rt := &ast.RecordType{}
	if p.curIs(token.IDENT) && p.peekIs(token.WITH) {
		rt.Tvar = p.parseIdentifier()
		p.next() // consume 'with'
	}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		pstart := p.cur.Offset
		name := p.parseIdentifier()
		pt := &ast.PropertyType{Name: name}
		if p.curIs(token.COLON) {
			p.next()
			pt.MonoType = p.parseMonoType()
		} else {
			pt.AddError(fmt.Sprintf("expected COLON, got %s", p.cur.Kind))
		}
		pt.Loc = p.span(pstart)
		rt.Properties = append(rt.Properties, pt)
		if p.curIs(token.COMMA) {
			p.next()
		} else if !p.curIs(token.RBRACE) {
			rt.AddError(fmt.Sprintf("expected COMMA or RBRACE, got %s", p.cur.Kind))
			break
		}
	}
	if p.curIs(token.RBRACE) {
		p.next()
	} else {
		rt.AddError("missing closing '}'")
	}
	rt.Loc = p.span(start)
	return rt
}

func (p *Parser) parseFunctionType() *ast.FunctionType {
	start := p.cur.Offset
	p.next() // consume '('
	ft := &ast.FunctionType{}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		pstart := p.cur.Offset
		pt := &ast.ParameterType{Kind: ast.Required}
		if p.curIs(token.PIPE_LIT) {
			pt.Kind = ast.Pipe
			p.next()
		}
		if p.curIs(token.IDENT) {
			pt.Name = p.parseIdentifier()
		} else {
			pt.AddError(fmt.Sprintf("expected IDENT, got %s", p.cur.Kind))
		}
		if p.curIs(token.COLON) {
			p.next()
			pt.MonoType = p.parseMonoType()
		} else {
			pt.AddError(fmt.Sprintf("expected COLON, got %s", p.cur.Kind))
		}
		pt.Loc = p.span(pstart)
		ft.Parameters = append(ft.Parameters, pt)
		if p.curIs(token.COMMA) {
			p.next()
		} else if !p.curIs(token.RPAREN) {
			ft.AddError(fmt.Sprintf("expected COMMA or RPAREN, got %s", p.cur.Kind))
			break
		}
	}
	if p.curIs(token.RPAREN) {
		p.next()
	} else {
		ft.AddError("missing closing ')'")
	}
	if p.curIs(token.ARROW) {
		p.next()
	} else {
		ft.AddError(fmt.Sprintf("expected ARROW, got %s", p.cur.Kind))
	}
	ft.MonoType = p.parseMonoType()
	ft.Loc = p.span(start)
	return ft
}
