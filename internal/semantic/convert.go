package semantic

import (
	"errors"
	"fmt"

	"github.com/cwbudde/flowql/internal/ast"
)

// converter carries the fresh-variable supplier and stops at the first
// error, per §4.3.1's single-pass, fail-fast contract.
type converter struct {
	fresher *Fresher
}

// ConvertWith lowers pkg into a semantic Package, seeding every type slot
// from fresher. It returns the first conversion error encountered and
// aborts immediately; there is no partial result on failure.
func ConvertWith(pkg *ast.Package, fresher *Fresher) (*Package, error) {
	c := &converter{fresher: fresher}
	out := &Package{
		BaseNode: ast.BaseNode{Loc: pkg.Loc},
		Package:  pkg.Package,
	}
	for _, f := range pkg.Files {
		sf, err := c.convertFile(f)
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, sf)
	}
	return out, nil
}

func (c *converter) convertFile(f *ast.File) (*File, error) {
	out := &File{BaseNode: ast.BaseNode{Loc: f.Loc}, Name: f.Name}
	if f.Package != nil && f.Package.Name != nil {
		out.Package = f.Package.Name.Name
	}
	for _, stmt := range f.Body {
		s, err := c.convertStatement(stmt)
		if err != nil {
			return nil, err
		}
		out.Body = append(out.Body, s)
	}
	return out, nil
}

func (c *converter) convertStatement(stmt ast.Statement) (Statement, error) {
	switch s := stmt.(type) {
	case *ast.VariableAssgn:
		return c.convertVariableAssgn(s)
	case *ast.OptionStmt:
		assign, err := c.convertAssignment(s.Assignment)
		if err != nil {
			return nil, err
		}
		return &OptionStmt{BaseNode: ast.BaseNode{Loc: s.Loc}, Assignment: assign}, nil
	case *ast.BuiltinStmt:
		ty, err := ConvertMonotype(s.Ty, map[string]TypeVar{}, c.fresher)
		if err != nil {
			return nil, err
		}
		return &BuiltinStmt{BaseNode: ast.BaseNode{Loc: s.Loc}, Name: s.ID.Name, Ty: ty}, nil
	case *ast.TestStmt:
		va, err := c.convertVariableAssgn(s.Assignment)
		if err != nil {
			return nil, err
		}
		return &TestStmt{BaseNode: ast.BaseNode{Loc: s.Loc}, Assignment: va}, nil
	case *ast.ReturnStmt:
		arg, err := c.convertExpression(s.Argument)
		if err != nil {
			return nil, err
		}
		return &ReturnStmt{BaseNode: ast.BaseNode{Loc: s.Loc}, Argument: arg}, nil
	case *ast.ExprStmt:
		expr, err := c.convertExpression(s.Expression)
		if err != nil {
			return nil, err
		}
		return &ExprStmt{BaseNode: ast.BaseNode{Loc: s.Loc}, Expression: expr}, nil
	case *ast.BadStmt:
		return nil, errors.New("not supported in semantic analysis")
	default:
		return nil, fmt.Errorf("not supported in semantic analysis")
	}
}

func (c *converter) convertAssignment(a ast.Assignment) (Assignment, error) {
	switch v := a.(type) {
	case *ast.VariableAssgn:
		return c.convertVariableAssgn(v)
	case *ast.MemberAssgn:
		member, err := c.convertExpression(v.Member)
		if err != nil {
			return nil, err
		}
		me, ok := member.(*MemberExpr)
		if !ok {
			return nil, errors.New("not supported in semantic analysis")
		}
		init, err := c.convertExpression(v.Init)
		if err != nil {
			return nil, err
		}
		return &MemberAssgn{BaseNode: ast.BaseNode{Loc: v.Loc}, Member: me, Init: init}, nil
	default:
		return nil, errors.New("not supported in semantic analysis")
	}
}

func (c *converter) convertVariableAssgn(v *ast.VariableAssgn) (*VariableAssgn, error) {
	init, err := c.convertExpression(v.Init)
	if err != nil {
		return nil, err
	}
	return &VariableAssgn{BaseNode: ast.BaseNode{Loc: v.Loc}, Name: v.ID.Name, Init: init}, nil
}

// convertFunctionBody canonicalizes a surface function body (either a bare
// expression or a statement block) into a Block chain, per §4.3.2.
func (c *converter) convertFunctionBody(body ast.FunctionBody) (Block, error) {
	if body.Expr != nil {
		expr, err := c.convertExpression(body.Expr)
		if err != nil {
			return nil, err
		}
		return &ReturnBlock{BaseNode: ast.BaseNode{Loc: body.Expr.Location()}, Argument: expr}, nil
	}
	return c.convertBlock(body.Block)
}

func (c *converter) convertBlock(block *ast.Block) (Block, error) {
	stmts := block.Body
	if len(stmts) == 0 {
		return nil, errors.New("missing return statement in block")
	}
	last := stmts[len(stmts)-1]
	ret, ok := last.(*ast.ReturnStmt)
	if !ok {
		return nil, errors.New("missing return statement in block")
	}
	arg, err := c.convertExpression(ret.Argument)
	if err != nil {
		return nil, err
	}
	chain := Block(&ReturnBlock{BaseNode: ast.BaseNode{Loc: ret.Loc}, Argument: arg})
	for i := len(stmts) - 2; i >= 0; i-- {
		switch s := stmts[i].(type) {
		case *ast.VariableAssgn:
			va, err := c.convertVariableAssgn(s)
			if err != nil {
				return nil, err
			}
			chain = &VariableBlock{BaseNode: ast.BaseNode{Loc: s.Loc}, Assgn: va, Rest: chain}
		case *ast.ExprStmt:
			expr, err := c.convertExpression(s.Expression)
			if err != nil {
				return nil, err
			}
			chain = &ExprBlock{BaseNode: ast.BaseNode{Loc: s.Loc}, Stmt: expr, Rest: chain}
		case *ast.BadStmt:
			return nil, errors.New("not supported in semantic analysis")
		default:
			return nil, errors.New("not supported in semantic analysis")
		}
	}
	return chain, nil
}

func (c *converter) convertExpression(expr ast.Expression) (Expression, error) {
	switch e := expr.(type) {
	case *ast.Identifier:
		return &IdentifierExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Name: e.Name, Typ: c.fresher.FreshVar()}, nil
	case *ast.ParenExpr:
		return c.convertExpression(e.Expression)
	case *ast.ArrayExpr:
		out := &ArrayExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Typ: c.fresher.FreshVar()}
		for _, el := range e.Elements {
			ce, err := c.convertExpression(el)
			if err != nil {
				return nil, err
			}
			out.Elements = append(out.Elements, ce)
		}
		return out, nil
	case *ast.ObjectExpr:
		return c.convertObjectExpr(e)
	case *ast.MemberExpr:
		obj, err := c.convertExpression(e.Object)
		if err != nil {
			return nil, err
		}
		return &MemberExpr{
			BaseNode: ast.BaseNode{Loc: e.Loc},
			Object:   obj,
			Property: propertyKeyName(e.Property),
			Typ:      c.fresher.FreshVar(),
		}, nil
	case *ast.IndexExpr:
		arr, err := c.convertExpression(e.Array)
		if err != nil {
			return nil, err
		}
		idx, err := c.convertExpression(e.Index)
		if err != nil {
			return nil, err
		}
		return &IndexExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Array: arr, Index: idx, Typ: c.fresher.FreshVar()}, nil
	case *ast.BinaryExpr:
		l, err := c.convertExpression(e.Left)
		if err != nil {
			return nil, err
		}
		r, err := c.convertExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return &BinaryExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Operator: e.Operator, Left: l, Right: r, Typ: c.fresher.FreshVar()}, nil
	case *ast.UnaryExpr:
		arg, err := c.convertExpression(e.Argument)
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Operator: e.Operator, Argument: arg, Typ: c.fresher.FreshVar()}, nil
	case *ast.LogicalExpr:
		l, err := c.convertExpression(e.Left)
		if err != nil {
			return nil, err
		}
		r, err := c.convertExpression(e.Right)
		if err != nil {
			return nil, err
		}
		return &LogicalExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Operator: e.Operator, Left: l, Right: r}, nil
	case *ast.ConditionalExpr:
		test, err := c.convertExpression(e.Test)
		if err != nil {
			return nil, err
		}
		cons, err := c.convertExpression(e.Consequent)
		if err != nil {
			return nil, err
		}
		alt, err := c.convertExpression(e.Alternate)
		if err != nil {
			return nil, err
		}
		return &ConditionalExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Test: test, Consequent: cons, Alternate: alt}, nil
	case *ast.CallExpr:
		return c.convertCallExpr(e, nil)
	case *ast.PipeExpr:
		pipe, err := c.convertExpression(e.Argument)
		if err != nil {
			return nil, err
		}
		return c.convertCallExpr(e.Call, pipe)
	case *ast.FunctionExpr:
		return c.convertFunctionExpr(e)
	case *ast.StringExpr:
		return c.convertStringExpr(e)
	case *ast.StringLit:
		return &StringLit{BaseNode: ast.BaseNode{Loc: e.Loc}, Value: e.Value}, nil
	case *ast.BooleanLit:
		return &BooleanLit{BaseNode: ast.BaseNode{Loc: e.Loc}, Value: e.Value}, nil
	case *ast.FloatLit:
		return &FloatLit{BaseNode: ast.BaseNode{Loc: e.Loc}, Value: e.Value}, nil
	case *ast.IntegerLit:
		return &IntegerLit{BaseNode: ast.BaseNode{Loc: e.Loc}, Value: e.Value}, nil
	case *ast.UnsignedIntegerLit:
		return &UnsignedIntegerLit{BaseNode: ast.BaseNode{Loc: e.Loc}, Value: e.Value}, nil
	case *ast.RegexpLit:
		return &RegexpLit{BaseNode: ast.BaseNode{Loc: e.Loc}, Value: e.Value}, nil
	case *ast.DurationLit:
		out := &DurationLit{BaseNode: ast.BaseNode{Loc: e.Loc}}
		for _, v := range e.Values {
			out.Values = append(out.Values, DurationPair{Magnitude: v.Magnitude, Unit: v.Unit})
		}
		return out, nil
	case *ast.DateTimeLit:
		return &DateTimeLit{BaseNode: ast.BaseNode{Loc: e.Loc}, Value: e.Value}, nil
	case *ast.PipeLit:
		return nil, errors.New("a pipe literal may only be used as a default value for an argument in a function definition")
	case *ast.BadExpr:
		return nil, errors.New("not supported in semantic analysis")
	default:
		return nil, errors.New("not supported in semantic analysis")
	}
}

func propertyKeyName(k ast.PropertyKey) string {
	switch v := k.(type) {
	case *ast.Identifier:
		return v.Name
	case *ast.StringLit:
		return v.Value
	default:
		return ""
	}
}

func (c *converter) convertObjectExpr(e *ast.ObjectExpr) (*ObjectExpr, error) {
	out := &ObjectExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Typ: c.fresher.FreshVar()}
	if e.With != nil {
		out.With = &IdentifierExpr{
			BaseNode: ast.BaseNode{Loc: e.With.Source.Loc},
			Name:     e.With.Source.Name,
			Typ:      c.fresher.FreshVar(),
		}
	}
	for _, p := range e.Properties {
		prop, err := c.convertProperty(p)
		if err != nil {
			return nil, err
		}
		out.Properties = append(out.Properties, prop)
	}
	return out, nil
}

// convertProperty implements §4.3.2's property-conversion rule: a property
// without a value becomes an identifier reference to the key; a
// string-literal key becomes an Identifier whose name is the literal's
// value.
func (c *converter) convertProperty(p *ast.Property) (*Property, error) {
	name := propertyKeyName(p.Key)
	out := &Property{BaseNode: ast.BaseNode{Loc: p.Loc}, Key: name}
	if p.Value == nil {
		out.Value = &IdentifierExpr{BaseNode: ast.BaseNode{Loc: p.Loc}, Name: name, Typ: c.fresher.FreshVar()}
		return out, nil
	}
	v, err := c.convertExpression(p.Value)
	if err != nil {
		return nil, err
	}
	out.Value = v
	return out, nil
}

// convertCallExpr lowers a call, collapsing its single allowed ObjectExpr
// argument into a flat property list per §4.2.5/§4.3.2, and attaching pipe
// (already converted by the caller) into the pipe slot.
func (c *converter) convertCallExpr(e *ast.CallExpr, pipe Expression) (*CallExpr, error) {
	callee, err := c.convertExpression(e.Callee)
	if err != nil {
		return nil, err
	}
	out := &CallExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Callee: callee, Pipe: pipe, Typ: c.fresher.FreshVar()}
	switch len(e.Arguments) {
	case 0:
	case 1:
		obj, ok := e.Arguments[0].(*ast.ObjectExpr)
		if !ok {
			return nil, errors.New("arguments are more than one object expression")
		}
		for _, p := range obj.Properties {
			prop, err := c.convertProperty(p)
			if err != nil {
				return nil, err
			}
			out.Arguments = append(out.Arguments, prop)
		}
	default:
		return nil, errors.New("arguments are more than one object expression")
	}
	return out, nil
}

func (c *converter) convertFunctionExpr(e *ast.FunctionExpr) (*FunctionExpr, error) {
	out := &FunctionExpr{BaseNode: ast.BaseNode{Loc: e.Loc}, Typ: c.fresher.FreshVar()}
	sawPipe := false
	for _, p := range e.Params {
		name := propertyKeyName(p.Key)
		param := &Param{BaseNode: ast.BaseNode{Loc: p.Loc}, Name: name}
		if _, isPipe := p.Value.(*ast.PipeLit); isPipe {
			if sawPipe {
				return nil, errors.New("only a single argument may be piped")
			}
			sawPipe = true
			param.IsPipe = true
		} else if p.Value != nil {
			def, err := c.convertExpression(p.Value)
			if err != nil {
				return nil, err
			}
			param.Default = def
		}
		out.Params = append(out.Params, param)
	}
	body, err := c.convertFunctionBody(e.Body)
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

func (c *converter) convertStringExpr(e *ast.StringExpr) (Expression, error) {
	out := &StringExpr{BaseNode: ast.BaseNode{Loc: e.Loc}}
	for _, part := range e.Parts {
		switch p := part.(type) {
		case *ast.TextPart:
			out.Parts = append(out.Parts, &TextPart{BaseNode: ast.BaseNode{Loc: p.Loc}, Value: p.Value})
		case *ast.InterpolatedPart:
			expr, err := c.convertExpression(p.Expression)
			if err != nil {
				return nil, err
			}
			out.Parts = append(out.Parts, &InterpolatedPart{BaseNode: ast.BaseNode{Loc: p.Loc}, Expression: expr})
		}
	}
	return out, nil
}
