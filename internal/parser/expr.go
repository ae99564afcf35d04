package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/token"
)

// parseExpression is the Pratt loop: parse a prefix/primary term, then
// repeatedly fold in any following operator whose precedence is at least
// minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	start := p.cur.Offset
	left := p.parseUnary(start)

	for {
		prec, ok := binaryPrecedence[p.cur.Kind]
		if !ok || prec < minPrec {
			break
		}
		switch p.cur.Kind {
		case token.LPAREN:
			left = p.parseCallExpr(left, start)
		case token.LBRACK:
			left = p.parseIndexExpr(left, start)
		case token.DOT:
			left = p.parseMemberAccess(left, start)
		case token.PIPE_FORWARD:
			left = p.parsePipeExpr(left, start)
		case token.AND:
			p.next()
			right := p.parseExpression(precAnd + 1)
			left = &ast.LogicalExpr{BaseNode: p.base(start), Operator: "and", Left: left, Right: right}
		case token.OR:
			p.next()
			right := p.parseExpression(precOr + 1)
			left = &ast.LogicalExpr{BaseNode: p.base(start), Operator: "or", Left: left, Right: right}
		case token.POW:
			op := opSymbol(p.cur.Kind)
			p.next()
			right := p.parseExpression(prec) // right-associative
			left = &ast.BinaryExpr{BaseNode: p.base(start), Operator: op, Left: left, Right: right}
		default:
			op := opSymbol(p.cur.Kind)
			p.next()
			right := p.parseExpression(prec + 1)
			left = &ast.BinaryExpr{BaseNode: p.base(start), Operator: op, Left: left, Right: right}
		}
	}
	return left
}

func (p *Parser) parseUnary(start int) ast.Expression {
	switch p.cur.Kind {
	case token.SUB:
		p.next()
		arg := p.parseExpression(precUnary)
		return &ast.UnaryExpr{BaseNode: p.base(start), Operator: "-", Argument: arg}
	case token.NOT:
		p.next()
		arg := p.parseExpression(precUnary)
		return &ast.UnaryExpr{BaseNode: p.base(start), Operator: "not", Argument: arg}
	case token.EXISTS:
		p.next()
		arg := p.parseExpression(precUnary)
		return &ast.UnaryExpr{BaseNode: p.base(start), Operator: "exists", Argument: arg}
	default:
		return p.parsePrimary()
	}
}

func opSymbol(k token.Kind) string {
	switch k {
	case token.ADD:
		return "+"
	case token.SUB:
		return "-"
	case token.MUL:
		return "*"
	case token.DIV:
		return "/"
	case token.MOD:
		return "%"
	case token.POW:
		return "^"
	case token.EQ:
		return "=="
	case token.NEQ:
		return "!="
	case token.LT:
		return "<"
	case token.LEQ:
		return "<="
	case token.GT:
		return ">"
	case token.GEQ:
		return ">="
	case token.REGEXEQ:
		return "=~"
	case token.REGEXNEQ:
		return "!~"
	}
	return k.String()
}

func (p *Parser) parsePrimary() ast.Expression {
	switch p.cur.Kind {
	case token.IDENT:
		if p.cur.Literal == "true" || p.cur.Literal == "false" {
			start := p.cur.Offset
			v := p.cur.Literal == "true"
			p.next()
			return &ast.BooleanLit{BaseNode: p.base(start), Value: v}
		}
		return p.parseIdentifier()
	case token.INT:
		return p.parseIntLit()
	case token.UINT:
		return p.parseUintLit()
	case token.FLOAT:
		return p.parseFloatLit()
	case token.STRING:
		return p.parseStringPrimary()
	case token.REGEX:
		return p.parseRegexLit()
	case token.DURATION:
		return p.parseDurationLit()
	case token.TIME:
		return p.parseTimeLit()
	case token.PIPE_LIT:
		start := p.cur.Offset
		p.next()
		return &ast.PipeLit{BaseNode: p.base(start)}
	case token.LPAREN:
		return p.parseParenOrFunctionExpr()
	case token.LBRACE:
		return p.parseObjectExpr()
	case token.LBRACK:
		return p.parseArrayExpr()
	case token.IF:
		return p.parseConditionalExpr()
	default:
		start := p.cur.Offset
		kind := p.cur.Kind
		lit := p.cur.Literal
		if !p.curIs(token.EOF) {
			p.next()
		}
		be := &ast.BadExpr{BaseNode: p.base(start), Text: lit}
		be.AddError(fmt.Sprintf("invalid token for primary expression: %s", kind))
		return be
	}
}

// parseParenOrFunctionExpr resolves the one genuine ambiguity in the
// grammar: `(` starts either a parenthesized expression or a function
// literal's parameter list. A comma or `=` after the first identifier
// commits unambiguously to a parameter list (neither is valid inside a
// bare parenthesized expression); a bare `(ident)` is resolved by checking
// whether `=>` follows the closing paren, which costs no extra lookahead
// since that token is already sitting in p.cur by the time the closing
// paren has been consumed.
func (p *Parser) parseParenOrFunctionExpr() ast.Expression {
	start := p.cur.Offset
	p.next() // consume '('

	if p.curIs(token.RPAREN) {
		p.next()
		return p.finishFunctionExpr(start, nil)
	}

	if p.curIs(token.IDENT) {
		switch p.pk.Kind {
		case token.COMMA, token.ASSIGN:
			params := p.parseFunctionParams()
			return p.finishFunctionExpr(start, params)
		case token.RPAREN:
			name := p.parseIdentifier()
			prop := &ast.Property{BaseNode: name.BaseNode, Key: name}
			if p.curIs(token.RPAREN) {
				p.next()
			} else {
				prop.AddError(fmt.Sprintf("expected RPAREN, got %s", p.cur.Kind))
			}
			if p.curIs(token.ARROW) {
				return p.finishFunctionExpr(start, []*ast.Property{prop})
			}
			pe := &ast.ParenExpr{BaseNode: p.base(start), Expression: name}
			return pe
		}
	}

	inner := p.parseExpression(lowest)
	pe := &ast.ParenExpr{Expression: inner}
	if p.curIs(token.RPAREN) {
		p.next()
	} else {
		pe.AddError(fmt.Sprintf("expected RPAREN, got %s", p.cur.Kind))
	}
	pe.Loc = p.span(start)
	return pe
}

func (p *Parser) finishFunctionExpr(start int, params []*ast.Property) *ast.FunctionExpr {
	fn := &ast.FunctionExpr{Params: params}
	if p.curIs(token.ARROW) {
		p.next()
	} else {
		fn.AddError(fmt.Sprintf("expected ARROW, got %s", p.cur.Kind))
	}
	if p.curIs(token.LBRACE) {
		fn.Body = ast.FunctionBody{Block: p.parseBlock()}
	} else {
		fn.Body = ast.FunctionBody{Expr: p.parseExpression(lowest)}
	}
	fn.Loc = p.span(start)
	return fn
}

// parseFunctionParams parses a comma-separated parameter list, consuming
// the closing ')'. The caller has already confirmed p.cur is the first
// parameter's name.
func (p *Parser) parseFunctionParams() []*ast.Property {
	var params []*ast.Property
	for {
		pstart := p.cur.Offset
		var name *ast.Identifier
		if p.curIs(token.IDENT) {
			name = p.parseIdentifier()
		} else {
			name = &ast.Identifier{Name: "<invalid>"}
			name.AddError(fmt.Sprintf("expected IDENT, got %s", p.cur.Kind))
			if !p.curIs(token.EOF) {
				p.next()
			}
			name.Loc = p.span(pstart)
		}
		prop := &ast.Property{Key: name}
		if p.curIs(token.ASSIGN) {
			p.next()
			prop.Value = p.parseExpression(lowest)
		}
		prop.Loc = p.span(pstart)
		params = append(params, prop)
		if p.curIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	if p.curIs(token.RPAREN) {
		p.next()
	} else if len(params) > 0 {
		params[len(params)-1].AddError(fmt.Sprintf("expected RPAREN, got %s", p.cur.Kind))
	}
	return params
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.cur.Offset
	p.next() // consume '{'
	blk := &ast.Block{}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		blk.Body = append(blk.Body, p.parseStatement())
	}
	if p.curIs(token.RBRACE) {
		p.next()
	} else {
		blk.AddError("missing closing '}'")
	}
	blk.Loc = p.span(start)
	return blk
}

func (p *Parser) parseCallExpr(callee ast.Expression, start int) *ast.CallExpr {
	p.next() // consume '('
	argsStart := p.cur.Offset
	obj := &ast.ObjectExpr{}
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		obj.Properties = append(obj.Properties, p.parseProperty())
		if p.curIs(token.COMMA) {
			p.next()
		} else if !p.curIs(token.RPAREN) {
			obj.AddError(fmt.Sprintf("expected COMMA or RPAREN, got %s", p.cur.Kind))
			break
		}
	}
	obj.Loc = p.loc.Span(argsStart, p.cur.Offset)
	if p.curIs(token.RPAREN) {
		p.next()
	} else {
		obj.AddError("missing closing ')'")
	}
	call := &ast.CallExpr{BaseNode: p.base(start), Callee: callee}
	if len(obj.Properties) > 0 || len(obj.Errs) > 0 {
		call.Arguments = []ast.Expression{obj}
	}
	return call
}

func (p *Parser) parseIndexExpr(array ast.Expression, start int) *ast.IndexExpr {
	p.next() // consume '['
	idx := p.parseExpression(lowest)
	ie := &ast.IndexExpr{Array: array, Index: idx}
	if p.curIs(token.RBRACK) {
		p.next()
	} else {
		ie.AddError(fmt.Sprintf("expected RBRACK, got %s", p.cur.Kind))
	}
	ie.Loc = p.span(start)
	return ie
}

func (p *Parser) parseMemberAccess(object ast.Expression, start int) *ast.MemberExpr {
	p.next() // consume '.'
	var key ast.PropertyKey
	switch p.cur.Kind {
	case token.IDENT:
		key = p.parseIdentifier()
	case token.STRING:
		key = p.parseStringLit()
	default:
		badStart := p.cur.Offset
		id := &ast.Identifier{Name: "<invalid>"}
		id.AddError(fmt.Sprintf("expected property name, got %s", p.cur.Kind))
		if !p.curIs(token.EOF) {
			p.next()
		}
		id.Loc = p.span(badStart)
		key = id
	}
	return &ast.MemberExpr{BaseNode: p.base(start), Object: object, Property: key}
}

func (p *Parser) parsePipeExpr(argument ast.Expression, start int) *ast.PipeExpr {
	p.next() // consume '|>'
	target := p.parseExpression(precPostfix)
	call, ok := target.(*ast.CallExpr)
	if !ok {
		call = &ast.CallExpr{BaseNode: p.base(start), Callee: target}
		call.AddError("pipe destination must be a function call")
	}
	return &ast.PipeExpr{BaseNode: p.base(start), Argument: argument, Call: call}
}

func (p *Parser) parseProperty() *ast.Property {
	start := p.cur.Offset
	var key ast.PropertyKey
	switch p.cur.Kind {
	case token.IDENT:
		key = p.parseIdentifier()
	case token.STRING:
		key = p.parseStringLit()
	default:
		id := &ast.Identifier{Name: "<invalid>"}
		id.AddError(fmt.Sprintf("unexpected token in property list: %s", p.cur.Kind))
		if !p.curIs(token.EOF) {
			p.next()
		}
		id.Loc = p.span(start)
		key = id
	}
	prop := &ast.Property{Key: key}
	if p.curIs(token.COLON) {
		p.next()
		prop.Value = p.parseExpression(lowest)
	}
	prop.Loc = p.span(start)
	return prop
}

func (p *Parser) parseObjectExpr() *ast.ObjectExpr {
	start := p.cur.Offset
	p.next() // consume '{'
	obj := &ast.ObjectExpr{}
	if p.curIs(token.IDENT) && p.peekIs(token.WITH) {
		wstart := p.cur.Offset
		src := p.parseIdentifier()
		p.next() // consume 'with'
		obj.With = &ast.WithSource{BaseNode: p.base(wstart), Source: src}
	}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		obj.Properties = append(obj.Properties, p.parseProperty())
		if p.curIs(token.COMMA) {
			p.next()
		} else if !p.curIs(token.RBRACE) {
			obj.AddError(fmt.Sprintf("expected COMMA or RBRACE, got %s", p.cur.Kind))
			break
		}
	}
	if p.curIs(token.RBRACE) {
		p.next()
	} else {
		obj.AddError("missing closing '}'")
	}
	obj.Loc = p.span(start)
	return obj
}

func (p *Parser) parseArrayExpr() *ast.ArrayExpr {
	start := p.cur.Offset
	p.next() // consume '['
	arr := &ast.ArrayExpr{}
	for !p.curIs(token.RBRACK) && !p.curIs(token.EOF) {
		arr.Elements = append(arr.Elements, p.parseExpression(lowest))
		if p.curIs(token.COMMA) {
			p.next()
		} else if !p.curIs(token.RBRACK) {
			arr.AddError(fmt.Sprintf("expected COMMA or RBRACK, got %s", p.cur.Kind))
			break
		}
	}
	if p.curIs(token.RBRACK) {
		p.next()
	} else {
		arr.AddError("missing closing ']'")
	}
	arr.Loc = p.span(start)
	return arr
}

func (p *Parser) parseConditionalExpr() *ast.ConditionalExpr {
	start := p.cur.Offset
	p.next() // consume 'if'
	ce := &ast.ConditionalExpr{}
	ce.Test = p.parseExpression(lowest)
	if p.curIs(token.THEN) {
		p.next()
	} else {
		ce.AddError(fmt.Sprintf("expected THEN, got %s", p.cur.Kind))
	}
	ce.Consequent = p.parseExpression(lowest)
	if p.curIs(token.ELSE) {
		p.next()
		ce.Alternate = p.parseExpression(lowest)
	} else {
		ce.AddError(fmt.Sprintf("expected ELSE, got %s", p.cur.Kind))
	}
	ce.Loc = p.span(start)
	return ce
}

func (p *Parser) parseIdentifier() *ast.Identifier {
	start := p.cur.Offset
	name := p.cur.Literal
	p.next()
	return &ast.Identifier{BaseNode: p.base(start), Name: name}
}

func (p *Parser) parseStringLit() *ast.StringLit {
	start := p.cur.Offset
	raw := p.cur.Literal
	p.next()
	return &ast.StringLit{BaseNode: p.base(start), Value: unquote(raw)}
}

func unquote(raw string) string {
	inner := raw
	inner = strings.TrimPrefix(inner, "\"")
	inner = strings.TrimSuffix(inner, "\"")
	return unescapeString(inner)
}

// parseStringPrimary turns a raw STRING token (quotes and all, possibly
// containing `${ ... }` spans, possibly missing its closing quote) into
// either a plain StringLit or a StringExpr of text/interpolated parts.
func (p *Parser) parseStringPrimary() ast.Expression {
	start := p.cur.Offset
	raw := p.cur.Literal
	p.next()

	terminated := len(raw) >= 2 && strings.HasSuffix(raw, "\"")
	inner := strings.TrimPrefix(raw, "\"")
	if terminated {
		inner = inner[:len(inner)-1]
	}

	if !strings.Contains(inner, "${") {
		if terminated {
			return &ast.StringLit{BaseNode: p.base(start), Value: unescapeString(inner)}
		}
		se := &ast.StringExpr{BaseNode: p.base(start)}
		se.AddError(fmt.Sprintf("got unexpected token in string expression @%s: EOF", p.eofLocString()))
		return se
	}

	parts, ok := p.splitInterpolation(inner, start)
	se := &ast.StringExpr{BaseNode: p.base(start), Parts: parts}
	if !terminated || !ok {
		se.Parts = nil
		se.Errs = nil
		se.AddError(fmt.Sprintf("got unexpected token in string expression @%s: EOF", p.eofLocString()))
	}
	return se
}

// eofLocString formats the zero-width span at the current token's position
// (the point parsing gave up, normally EOF) as spec.md §8.3 scenario 5
// pins it: "<startLine>:<startCol>-<endLine>:<endCol>", with no filename.
func (p *Parser) eofLocString() string {
	loc := p.loc.Span(p.cur.Offset, p.cur.Offset)
	return fmt.Sprintf("%d:%d-%d:%d", loc.Start.Line, loc.Start.Column, loc.End.Line, loc.End.Column)
}

// splitInterpolation walks inner (the string literal's text, quotes
// already stripped) splitting it into TextPart/InterpolatedPart runs.
// Each `${ ... }` span is parsed as an independent expression over just
// that substring. Reports ok=false if a `${` is never closed.
func (p *Parser) splitInterpolation(inner string, baseOffset int) ([]ast.StringExprPart, bool) {
	var parts []ast.StringExprPart
	textStart := 0
	i := 0
	for i < len(inner) {
		if inner[i] == '$' && i+1 < len(inner) && inner[i+1] == '{' {
			if i > textStart {
				parts = append(parts, &ast.TextPart{
					BaseNode: p.base(baseOffset),
					Value:    unescapeString(inner[textStart:i]),
				})
			}
			depth := 1
			j := i + 2
			for j < len(inner) && depth > 0 {
				switch inner[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			if depth != 0 {
				return parts, false
			}
			exprText := inner[i+2 : j]
			sub := New(exprText, p.file)
			expr := sub.parseExpression(lowest)
			parts = append(parts, &ast.InterpolatedPart{BaseNode: p.base(baseOffset), Expression: expr})
			i = j + 1
			textStart = i
			continue
		}
		i++
	}
	if textStart < len(inner) {
		parts = append(parts, &ast.TextPart{
			BaseNode: p.base(baseOffset),
			Value:    unescapeString(inner[textStart:]),
		})
	}
	return parts, true
}

func unescapeString(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func (p *Parser) parseIntLit() *ast.IntegerLit {
	start := p.cur.Offset
	text := p.cur.Literal
	p.next()
	lit := &ast.IntegerLit{BaseNode: p.base(start)}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		lit.AddError(fmt.Sprintf("invalid integer literal %q: value out of range", text))
		return lit
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseUintLit() *ast.UnsignedIntegerLit {
	start := p.cur.Offset
	text := strings.TrimSuffix(p.cur.Literal, "u")
	orig := p.cur.Literal
	p.next()
	lit := &ast.UnsignedIntegerLit{BaseNode: p.base(start)}
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		lit.AddError(fmt.Sprintf("invalid unsigned integer literal %q: value out of range", orig))
		return lit
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseFloatLit() *ast.FloatLit {
	start := p.cur.Offset
	text := p.cur.Literal
	p.next()
	v, _ := strconv.ParseFloat(text, 64)
	return &ast.FloatLit{BaseNode: p.base(start), Value: v}
}

func (p *Parser) parseRegexLit() *ast.RegexpLit {
	start := p.cur.Offset
	raw := p.cur.Literal
	p.next()
	pattern := strings.TrimSuffix(strings.TrimPrefix(raw, "/"), "/")
	lit := &ast.RegexpLit{BaseNode: p.base(start), Value: pattern}
	if _, err := regexp.Compile(pattern); err != nil {
		lit.AddError(fmt.Sprintf("regex parse error: %s", err))
	}
	return lit
}

func (p *Parser) parseTimeLit() *ast.DateTimeLit {
	start := p.cur.Offset
	text := p.cur.Literal
	p.next()
	lit := &ast.DateTimeLit{BaseNode: p.base(start)}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if v, err := time.Parse(layout, text); err == nil {
			lit.Value = v
			return lit
		}
	}
	lit.AddError(fmt.Sprintf("invalid time literal %q", text))
	return lit
}

// parseDurationLit rolls up one or more offset-contiguous DURATION tokens
// (no gap between them) into a single node, in source order.
func (p *Parser) parseDurationLit() *ast.DurationLit {
	start := p.cur.Offset
	lit := &ast.DurationLit{}
	for p.curIs(token.DURATION) {
		text := p.cur.Literal
		end := p.cur.Offset + len(text)
		pair, ok := parseDurationPair(text)
		if !ok {
			lit.AddError(fmt.Sprintf("invalid duration literal %q", text))
		} else {
			lit.Values = append(lit.Values, pair)
		}
		p.next()
		if !(p.curIs(token.DURATION) && p.cur.Offset == end) {
			break
		}
	}
	lit.Loc = p.span(start)
	return lit
}

func parseDurationPair(lit string) (ast.DurationPair, bool) {
	i := 0
	for i < len(lit) && lit[i] >= '0' && lit[i] <= '9' {
		i++
	}
	digits, unit := lit[:i], lit[i:]
	if digits == "" || unit == "" {
		return ast.DurationPair{}, false
	}
	mag, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return ast.DurationPair{}, false
	}
	return ast.DurationPair{Magnitude: mag, Unit: unit}, true
}
