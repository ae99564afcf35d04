package semantic_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/parser"
	"github.com/cwbudde/flowql/internal/semantic"
)

func convertSource(t *testing.T, source string) (*semantic.Package, error) {
	t.Helper()
	file := parser.ParseFile(source, "test.flux")
	pkg := &ast.Package{BaseNode: ast.BaseNode{Loc: file.Loc}, Package: "main", Files: []*ast.File{file}}
	return semantic.ConvertWith(pkg, semantic.NewFresher(0))
}

func TestConvertWith_IdentityRecordFunction(t *testing.T) {
	sp, err := convertSource(t, `f = (r) => ({a: r.a, b: r.b})`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va, ok := sp.Files[0].Body[0].(*semantic.VariableAssgn)
	if !ok {
		t.Fatalf("expected VariableAssgn, got %T", sp.Files[0].Body[0])
	}
	if va.Name != "f" {
		t.Fatalf("expected name f, got %s", va.Name)
	}
	fn, ok := va.Init.(*semantic.FunctionExpr)
	if !ok {
		t.Fatalf("expected FunctionExpr, got %T", va.Init)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "r" {
		t.Fatalf("unexpected params: %+v", fn.Params)
	}
	rb, ok := fn.Body.(*semantic.ReturnBlock)
	if !ok {
		t.Fatalf("expected a bare-expression body to canonicalize to ReturnBlock, got %T", fn.Body)
	}
	obj, ok := rb.Argument.(*semantic.ObjectExpr)
	if !ok {
		t.Fatalf("expected ObjectExpr, got %T", rb.Argument)
	}
	if len(obj.Properties) != 2 || obj.Properties[0].Key != "a" || obj.Properties[1].Key != "b" {
		t.Fatalf("unexpected properties: %+v", obj.Properties)
	}
}

func TestConvertWith_BlockBodyFoldsRightToLeft(t *testing.T) {
	sp, err := convertSource(t, "f = (r) => {\n  a = r.a\n  b = r.b\n  return a + b\n}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va := sp.Files[0].Body[0].(*semantic.VariableAssgn)
	fn := va.Init.(*semantic.FunctionExpr)
	outer, ok := fn.Body.(*semantic.VariableBlock)
	if !ok {
		t.Fatalf("expected outer VariableBlock, got %T", fn.Body)
	}
	if outer.Assgn.Name != "a" {
		t.Fatalf("expected outer binding a, got %s", outer.Assgn.Name)
	}
	inner, ok := outer.Rest.(*semantic.VariableBlock)
	if !ok {
		t.Fatalf("expected inner VariableBlock, got %T", outer.Rest)
	}
	if inner.Assgn.Name != "b" {
		t.Fatalf("expected inner binding b, got %s", inner.Assgn.Name)
	}
	if _, ok := inner.Rest.(*semantic.ReturnBlock); !ok {
		t.Fatalf("expected chain to bottom out at ReturnBlock, got %T", inner.Rest)
	}
}

func TestConvertWith_MissingReturnStatement(t *testing.T) {
	_, err := convertSource(t, "f = (r) => {\n  a = r.a\n}")
	if err == nil || !strings.Contains(err.Error(), "missing return statement in block") {
		t.Fatalf("expected missing-return error, got %v", err)
	}
}

func TestConvertWith_OnlyOneArgumentMayBePiped(t *testing.T) {
	_, err := convertSource(t, `f = (a = <-, b = <-) => a`)
	if err == nil || !strings.Contains(err.Error(), "only a single argument may be piped") {
		t.Fatalf("expected single-pipe error, got %v", err)
	}
}

func TestConvertWith_MultipleCallArguments(t *testing.T) {
	// The parser folds a call's named arguments into one ObjectExpr, so a
	// call carrying two object arguments is built directly.
	call := &ast.CallExpr{
		Callee: &ast.Identifier{Name: "g"},
		Arguments: []ast.Expression{
			&ast.ObjectExpr{Properties: []*ast.Property{{Key: &ast.Identifier{Name: "a"}, Value: &ast.IntegerLit{Value: 1}}}},
			&ast.ObjectExpr{Properties: []*ast.Property{{Key: &ast.Identifier{Name: "b"}, Value: &ast.IntegerLit{Value: 2}}}},
		},
	}
	file := &ast.File{Name: "test.flux", Body: []ast.Statement{&ast.VariableAssgn{ID: &ast.Identifier{Name: "f"}, Init: call}}}
	pkg := &ast.Package{Package: "main", Files: []*ast.File{file}}
	_, err := semantic.ConvertWith(pkg, semantic.NewFresher(0))
	if err == nil || !strings.Contains(err.Error(), "arguments are more than one object expression") {
		t.Fatalf("expected multiple-arguments error, got %v", err)
	}
}

func TestConvertWith_PipeLiteralOutsideDefault(t *testing.T) {
	_, err := convertSource(t, `x = <-`)
	if err == nil || !strings.Contains(err.Error(), "a pipe literal may only be used as a default value for an argument in a function definition") {
		t.Fatalf("expected pipe-literal error, got %v", err)
	}
}

func TestConvertWith_ImplicitPropertyBecomesIdentifierReference(t *testing.T) {
	sp, err := convertSource(t, "a = 1\nb = 2\nobj = {a, b}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va := sp.Files[0].Body[2].(*semantic.VariableAssgn)
	obj := va.Init.(*semantic.ObjectExpr)
	ident, ok := obj.Properties[0].Value.(*semantic.IdentifierExpr)
	if !ok || ident.Name != "a" {
		t.Fatalf("expected implicit property a to become an identifier reference, got %+v", obj.Properties[0].Value)
	}
}

func TestConvertWith_PipeForwardFoldsIntoCallPipe(t *testing.T) {
	sp, err := convertSource(t, `data |> filter(fn: (r) => r.a > 0)`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stmt := sp.Files[0].Body[0].(*semantic.ExprStmt)
	call, ok := stmt.Expression.(*semantic.CallExpr)
	if !ok {
		t.Fatalf("expected CallExpr, got %T", stmt.Expression)
	}
	if call.Pipe == nil {
		t.Fatalf("expected Pipe to be populated, folding the pipe-forward into the call")
	}
	pipeIdent, ok := call.Pipe.(*semantic.IdentifierExpr)
	if !ok || pipeIdent.Name != "data" {
		t.Fatalf("expected pipe source data, got %+v", call.Pipe)
	}
}

func TestConvertWith_EveryTypeSlotStartsAsADistinctFreshVar(t *testing.T) {
	sp, err := convertSource(t, `f = (r) => r.a`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	va := sp.Files[0].Body[0].(*semantic.VariableAssgn)
	fn := va.Init.(*semantic.FunctionExpr)
	rb := fn.Body.(*semantic.ReturnBlock)
	member := rb.Argument.(*semantic.MemberExpr)

	fnVar, ok := fn.Typ.(semantic.Var)
	if !ok {
		t.Fatalf("expected FunctionExpr.Typ to be a fresh Var, got %T", fn.Typ)
	}
	memberVar, ok := member.Typ.(semantic.Var)
	if !ok {
		t.Fatalf("expected MemberExpr.Typ to be a fresh Var, got %T", member.Typ)
	}
	if fnVar.TypeVar == memberVar.TypeVar {
		t.Fatalf("expected distinct type variables, both resolved to %v", fnVar.TypeVar)
	}
}

func TestConvertMonotype_RecordFieldsFoldRightToLeft(t *testing.T) {
	astTy := &ast.RecordType{
		Properties: []*ast.PropertyType{
			{Name: &ast.Identifier{Name: "a"}, MonoType: &ast.BasicType{Name: &ast.Identifier{Name: "int"}}},
			{Name: &ast.Identifier{Name: "b"}, MonoType: &ast.BasicType{Name: &ast.Identifier{Name: "string"}}},
		},
	}
	fresher := semantic.NewFresher(0)
	mt, err := semantic.ConvertMonotype(astTy, map[string]semantic.TypeVar{}, fresher)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rt, ok := mt.(semantic.RecordType)
	if !ok {
		t.Fatalf("expected RecordType, got %T", mt)
	}
	outer, ok := rt.Row.(semantic.RowExtension)
	if !ok || outer.Head.Key != "a" {
		t.Fatalf("expected outermost row extension to be the first property a, got %+v", rt.Row)
	}
	inner, ok := outer.Tail.(semantic.RowExtension)
	if !ok || inner.Head.Key != "b" {
		t.Fatalf("expected next row extension to be b, got %+v", outer.Tail)
	}
	if _, ok := inner.Tail.(semantic.RowEmpty); !ok {
		t.Fatalf("expected the fold to bottom out at RowEmpty for a closed record, got %+v", inner.Tail)
	}
}

func TestSprint_RendersTypeSlotsAlongsideShape(t *testing.T) {
	sp, err := convertSource(t, `f = (r) => r.a`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := semantic.Sprint(sp)
	for _, want := range []string{"VariableAssgn f =", "FunctionExpr", "MemberExpr .a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected Sprint output to contain %q, got:\n%s", want, out)
		}
	}
}
