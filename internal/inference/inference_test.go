package inference_test

import (
	"strings"
	"testing"

	"github.com/cwbudde/flowql/internal/ast"
	"github.com/cwbudde/flowql/internal/inference"
	"github.com/cwbudde/flowql/internal/semantic"
)

func TestMockEngine_ResolvesVarAgainstConcreteType(t *testing.T) {
	fresher := semantic.NewFresher(0)
	v := fresher.FreshVar()
	constraints := inference.NewConstraints()
	constraints.Add(v, semantic.BasicType{Kind: semantic.BasicInt}, ast.SourceLocation{})

	engine := inference.MockEngine{}
	_, sub, err := engine.InferPkgTypesWithConstraints(nil, inference.NewEnv(), constraints, fresher, inference.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolved := sub.Apply(v)
	bt, ok := resolved.(semantic.BasicType)
	if !ok || bt.Kind != semantic.BasicInt {
		t.Fatalf("expected v to resolve to int, got %v", resolved)
	}
}

func TestMockEngine_MismatchedBasicTypesFail(t *testing.T) {
	fresher := semantic.NewFresher(0)
	constraints := inference.NewConstraints()
	constraints.Add(semantic.BasicType{Kind: semantic.BasicInt}, semantic.BasicType{Kind: semantic.BasicString}, ast.SourceLocation{})

	engine := inference.MockEngine{}
	_, _, err := engine.InferPkgTypesWithConstraints(nil, inference.NewEnv(), constraints, fresher, inference.Options{})
	if err == nil || !strings.Contains(err.Error(), "cannot unify") {
		t.Fatalf("expected a unification error, got %v", err)
	}
}

func TestSubstitution_AppliesThroughRecordRows(t *testing.T) {
	fresher := semantic.NewFresher(0)
	elemVar := fresher.Fresh()
	row := semantic.RowExtension{
		Head: semantic.RowProperty{Key: "a", Value: semantic.Var{TypeVar: elemVar}},
		Tail: semantic.RowEmpty{},
	}
	rt := semantic.RecordType{Row: row}

	constraints := inference.NewConstraints()
	constraints.Add(semantic.Var{TypeVar: elemVar}, semantic.BasicType{Kind: semantic.BasicFloat}, ast.SourceLocation{})
	engine := inference.MockEngine{}
	_, sub, err := engine.InferPkgTypesWithConstraints(nil, inference.NewEnv(), constraints, fresher, inference.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resolved := sub.Apply(rt).(semantic.RecordType)
	ext := resolved.Row.(semantic.RowExtension)
	bt, ok := ext.Head.Value.(semantic.BasicType)
	if !ok || bt.Kind != semantic.BasicFloat {
		t.Fatalf("expected record field a to resolve to float, got %v", ext.Head.Value)
	}
}

func TestEnv_LookupFallsThroughToParent(t *testing.T) {
	parent := inference.NewEnv()
	parent.Set("x", semantic.BasicType{Kind: semantic.BasicInt})
	child := parent.Child()

	got, ok := child.Lookup("x")
	if !ok {
		t.Fatalf("expected child to see parent's binding for x")
	}
	if bt, ok := got.(semantic.BasicType); !ok || bt.Kind != semantic.BasicInt {
		t.Fatalf("expected x to resolve to int, got %v", got)
	}
	if _, ok := child.Lookup("y"); ok {
		t.Fatalf("expected no binding for y")
	}
}
