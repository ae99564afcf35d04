// Package parser implements the flowql recursive-descent parser.
//
// It never fails catastrophically: malformed input produces a tree with
// Bad nodes and per-node error strings rather than an exception. Parsing
// is strictly single-pass with one token of lookahead — there is no
// backtracking, per spec.md's Non-goals.
package parser

import (
	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/token"
)

// Precedence levels, weakest-binding first, assigned so that a standard
// precedence-climbing loop ("consume while the next operator binds tighter
// than the minimum for this call") reproduces spec.md §4.2.3's table:
//
//	1 Primary · 2 Postfix · 3 Power · 4 Multiplicative · 5 Additive ·
//	6 Relational · 7 Unary · 8 And · 9 Or · 10 Conditional
//
// Unary sits *below* Relational (bp 4 < bp 5) so "not a == b" parses as
// "not (a == b)", matching the table's stated order.
//
// Pipe-forward binds just below the other postfix forms, so a pipe
// destination (parsed at precPostfix) stops before the next `|>` and a
// chain `a |> f() |> g()` nests to the left.
const (
	lowest      = 0
	precOr      = 2
	precAnd     = 3
	precUnary   = 4
	precRel     = 5
	precAdd     = 6
	precMul     = 7
	precPow     = 8
	precPipe    = 9
	precPostfix = 10
)

var binaryPrecedence = map[token.Kind]int{
	token.OR:           precOr,
	token.AND:          precAnd,
	token.LT:           precRel,
	token.LEQ:          precRel,
	token.GT:           precRel,
	token.GEQ:          precRel,
	token.EQ:           precRel,
	token.NEQ:          precRel,
	token.REGEXEQ:      precRel,
	token.REGEXNEQ:     precRel,
	token.ADD:          precAdd,
	token.SUB:          precAdd,
	token.MUL:          precMul,
	token.DIV:          precMul,
	token.MOD:          precMul,
	token.POW:          precPow,
	token.LPAREN:       precPostfix,
	token.LBRACK:       precPostfix,
	token.DOT:          precPostfix,
	token.PIPE_FORWARD: precPipe,
}

// Parser builds an *ast.File from a token.Scanner by recursive descent.
// The only cross-production mutable state is the token cursor (cur/peek);
// every production is a transition function that consumes zero or more
// tokens and always returns a node, possibly Bad.
type Parser struct {
	loc  *ast.LocationService
	sc   *token.Scanner
	cur  token.Token
	pk   token.Token
	file string
}

// New creates a Parser over source, attributed to fileName for locations
// and diagnostics.
func New(source, fileName string) *Parser {
	p := &Parser{
		loc:  ast.NewLocationService(fileName, source),
		sc:   token.New(source),
		file: fileName,
	}
	p.cur = p.sc.Next()
	p.pk = p.sc.Next()
	return p
}

// ParseFile parses source (under fileName) into a File. It never returns
// an error: problems are embedded as Bad nodes and per-node error-list
// entries.
func ParseFile(source, fileName string) *ast.File {
	p := New(source, fileName)
	return p.parseFile()
}

func (p *Parser) next() {
	p.cur = p.pk
	p.pk = p.sc.Next()
}

func (p *Parser) curIs(k token.Kind) bool  { return p.cur.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.pk.Kind == k }

func (p *Parser) span(start int) ast.SourceLocation {
	return p.loc.Span(start, p.cur.Offset)
}

func (p *Parser) base(start int) ast.BaseNode {
	return ast.BaseNode{Loc: p.span(start)}
}
