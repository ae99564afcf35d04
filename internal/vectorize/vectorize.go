// Package vectorize implements the prototype vectorization pass of
// spec.md §4.7: given a function over scalar record fields, it rewrites
// the function's type so that the named parameter's (and the return
// value's) record fields become Vector-typed, and marks scalar literals
// that must broadcast against those vectors for later code generation.
package vectorize

import (
	"fmt"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/inference"
	"github.com/cwbudde/flowql/internal/semantic"
)

const syntheticBinding = "_vectorize_target"

// Vectorize rewrites fn so that the record parameter named param, and any
// record-typed return value, carry Vector-typed fields instead of scalar
// ones. fn.Typ must already be a semantic.FunctionType; any other shape is
// a precondition violation (programming error), per spec.md §4.7's stated
// failure modes.
func Vectorize(env *inference.Env, fresher *semantic.Fresher, fn *semantic.FunctionExpr, param string) (*semantic.FunctionExpr, error) {
	ft, ok := fn.Typ.(semantic.FunctionType)
	if !ok {
		panic("vectorize: function expression does not carry a function type")
	}

	constraints := inference.NewConstraints()
	vectorizedType := vectorizeFnType(ft, param, fresher, constraints)
	fn.Typ = vectorizedType

	pkg := wrapFnExpr(fn)

	semantic.WalkMut(&fresheningVisitor{fresher: fresher}, pkg)
	semantic.WalkMut(&expandingVisitor{fresher: fresher}, pkg)

	assgn := pkg.Files[0].Body[0].(*semantic.VariableAssgn)
	constraints.Add(assgn.Init.(*semantic.FunctionExpr).Typ, vectorizedType, pkg.Loc)

	engine := inference.MockEngine{}
	_, sub, err := engine.InferPkgTypesWithConstraints(pkg, env, constraints, fresher, inference.Options{})
	if err != nil {
		return nil, fmt.Errorf("vectorize: %w", err)
	}
	pkg = inference.InjectPkgTypes(pkg, sub)

	return unwrapFnExpr(pkg), nil
}

// vectorizeFnType implements step 1: a fresh `α = Vector(β)` pair per
// property of the named parameter's record type and of the return record
// type, substituting α for the property's original type. β is freshly
// minted rather than reused from the original property type (see
// DESIGN.md's note on this Open Question).
func vectorizeFnType(ft semantic.FunctionType, param string, fresher *semantic.Fresher, constraints *inference.Constraints) semantic.FunctionType {
	out := semantic.FunctionType{
		Parameters: make([]*semantic.Parameter, len(ft.Parameters)),
		Return:     ft.Return,
	}
	for i, p := range ft.Parameters {
		if p.Name == param {
			out.Parameters[i] = &semantic.Parameter{
				Kind: p.Kind,
				Name: p.Name,
				Type: vectorizeRecordType(p.Type, fresher, constraints),
			}
			continue
		}
		out.Parameters[i] = p
	}
	out.Return = vectorizeRecordType(ft.Return, fresher, constraints)
	return out
}

func vectorizeRecordType(t semantic.MonoType, fresher *semantic.Fresher, constraints *inference.Constraints) semantic.MonoType {
	rt, ok := t.(semantic.RecordType)
	if !ok {
		return t
	}
	return semantic.RecordType{Row: vectorizeRow(rt.Row, fresher, constraints)}
}

func vectorizeRow(row semantic.Row, fresher *semantic.Fresher, constraints *inference.Constraints) semantic.Row {
	ext, ok := row.(semantic.RowExtension)
	if !ok {
		return row
	}
	alpha := fresher.Fresh()
	beta := fresher.Fresh()
	constraints.Add(semantic.Var{TypeVar: alpha}, semantic.VectorType{Element: semantic.Var{TypeVar: beta}}, ast.SourceLocation{})
	return semantic.RowExtension{
		Head: semantic.RowProperty{Key: ext.Head.Key, Value: semantic.Var{TypeVar: alpha}},
		Tail: vectorizeRow(ext.Tail, fresher, constraints),
	}
}

// wrapFnExpr builds a synthetic single-statement package so the inference
// engine (and the walker passes) can process fn uniformly, per step 2.
func wrapFnExpr(fn *semantic.FunctionExpr) *semantic.Package {
	assgn := &semantic.VariableAssgn{Name: syntheticBinding, Init: fn}
	file := &semantic.File{Name: "<vectorize>", Package: "vectorize", Body: []semantic.Statement{assgn}}
	return &semantic.Package{Package: "vectorize", Files: []*semantic.File{file}}
}

// unwrapFnExpr reverses wrapFnExpr, extracting the (now rewritten)
// function back out of the synthetic package.
func unwrapFnExpr(pkg *semantic.Package) *semantic.FunctionExpr {
	assgn := pkg.Files[0].Body[0].(*semantic.VariableAssgn)
	return assgn.Init.(*semantic.FunctionExpr)
}
