package vectorize_test

import (
	"testing"

	"github.com/cwbudde/flowql/internal/inference"
	"github.com/cwbudde/flowql/internal/semantic"
	"github.com/cwbudde/flowql/internal/vectorize"
)

func recordOf(fields ...semantic.RowProperty) semantic.RecordType {
	var row semantic.Row = semantic.RowEmpty{}
	for i := len(fields) - 1; i >= 0; i-- {
		row = semantic.RowExtension{Head: fields[i], Tail: row}
	}
	return semantic.RecordType{Row: row}
}

// TestVectorize_IdentityRecordFunction mirrors `(r) => ({a: r.a, b: r.b})`,
// vectorized on its sole parameter r: spec.md §8.3's identity scenario.
func TestVectorize_IdentityRecordFunction(t *testing.T) {
	fresher := semantic.NewFresher(0)
	record := recordOf(
		semantic.RowProperty{Key: "a", Value: semantic.BasicType{Kind: semantic.BasicInt}},
		semantic.RowProperty{Key: "b", Value: semantic.BasicType{Kind: semantic.BasicFloat}},
	)

	rIdentA := &semantic.IdentifierExpr{Name: "r", Typ: fresher.FreshVar()}
	rIdentB := &semantic.IdentifierExpr{Name: "r", Typ: fresher.FreshVar()}
	body := &semantic.ObjectExpr{
		Typ: fresher.FreshVar(),
		Properties: []*semantic.Property{
			{Key: "a", Value: &semantic.MemberExpr{Object: rIdentA, Property: "a", Typ: fresher.FreshVar()}},
			{Key: "b", Value: &semantic.MemberExpr{Object: rIdentB, Property: "b", Typ: fresher.FreshVar()}},
		},
	}
	fn := &semantic.FunctionExpr{
		Params: []*semantic.Param{{Name: "r"}},
		Body:   &semantic.ReturnBlock{Argument: body},
		Typ: semantic.FunctionType{
			Parameters: []*semantic.Parameter{{Kind: semantic.Required, Name: "r", Type: record}},
			Return:     record,
		},
	}

	out, err := vectorize.Vectorize(inference.NewEnv(), fresher, fn, "r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ft, ok := out.Typ.(semantic.FunctionType)
	if !ok {
		t.Fatalf("expected FunctionType, got %T", out.Typ)
	}
	paramRow := ft.Parameters[0].Type.(semantic.RecordType).Row.(semantic.RowExtension)
	if _, ok := paramRow.Head.Value.(semantic.VectorType); !ok {
		t.Fatalf("expected parameter field a to become Vector-typed, got %v", paramRow.Head.Value)
	}
	returnRow := ft.Return.(semantic.RecordType).Row.(semantic.RowExtension)
	if _, ok := returnRow.Head.Value.(semantic.VectorType); !ok {
		t.Fatalf("expected return field a to become Vector-typed, got %v", returnRow.Head.Value)
	}
}

// TestVectorize_ExpandsScalarLiteralOperands mirrors `(r) => ({a: r.a + 1})`:
// the literal 1 must be wrapped in an ExpandExpr so later code generation
// knows to broadcast it against the vectorized field r.a.
func TestVectorize_ExpandsScalarLiteralOperands(t *testing.T) {
	fresher := semantic.NewFresher(0)
	record := recordOf(semantic.RowProperty{Key: "a", Value: semantic.BasicType{Kind: semantic.BasicInt}})

	member := &semantic.MemberExpr{
		Object:   &semantic.IdentifierExpr{Name: "r", Typ: fresher.FreshVar()},
		Property: "a",
		Typ:      fresher.FreshVar(),
	}
	binary := &semantic.BinaryExpr{
		Operator: "+",
		Left:     member,
		Right:    &semantic.IntegerLit{Value: 1},
		Typ:      fresher.FreshVar(),
	}
	body := &semantic.ObjectExpr{
		Typ:        fresher.FreshVar(),
		Properties: []*semantic.Property{{Key: "a", Value: binary}},
	}
	fn := &semantic.FunctionExpr{
		Params: []*semantic.Param{{Name: "r"}},
		Body:   &semantic.ReturnBlock{Argument: body},
		Typ: semantic.FunctionType{
			Parameters: []*semantic.Parameter{{Kind: semantic.Required, Name: "r", Type: record}},
			Return:     record,
		},
	}

	out, err := vectorize.Vectorize(inference.NewEnv(), fresher, fn, "r")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rb := out.Body.(*semantic.ReturnBlock)
	obj := rb.Argument.(*semantic.ObjectExpr)
	bin := obj.Properties[0].Value.(*semantic.BinaryExpr)
	expand, ok := bin.Right.(*semantic.ExpandExpr)
	if !ok {
		t.Fatalf("expected the literal operand to be wrapped in ExpandExpr, got %T", bin.Right)
	}
	if _, ok := expand.Argument.(*semantic.IntegerLit); !ok {
		t.Fatalf("expected ExpandExpr to wrap the original IntegerLit, got %T", expand.Argument)
	}
	if _, ok := bin.Left.(*semantic.ExpandExpr); ok {
		t.Fatalf("expected the member-expression operand to stay unwrapped")
	}
}
