// Package semantic lowers a parsed AST package into a semantic graph: every
// expression carries a mutable type slot (initially a fresh type variable),
// pipe expressions are folded into calls, function bodies are canonicalized
// into a left-nested Block chain, and record type expressions are lowered
// into rows. The semantic graph is what a Hindley–Milner inference pass
// consumes; this package does not perform inference itself, and produces
// no constraints, only the graph.
package semantic

import "fmt"

// TypeVar is a unique type-variable identifier minted by a Fresher.
type TypeVar int

// MonoType is a monomorphic type: a type variable, a basic scalar kind, an
// array, a function signature, a record (row), or a vector.
type MonoType interface {
	monoTypeNode()
}

// Var is an unresolved type variable occupying a type slot.
type Var struct {
	TypeVar TypeVar
}

func (Var) monoTypeNode() {}

func (v Var) String() string { return fmt.Sprintf("t%d", v.TypeVar) }

// Basic names a built-in scalar kind.
type Basic string

const (
	BasicBool     Basic = "bool"
	BasicInt      Basic = "int"
	BasicUint     Basic = "uint"
	BasicFloat    Basic = "float"
	BasicString   Basic = "string"
	BasicDuration Basic = "duration"
	BasicTime     Basic = "time"
	BasicRegexp   Basic = "regexp"
	BasicBytes    Basic = "bytes"
)

// BasicType is one of the built-in scalar types.
type BasicType struct {
	Kind Basic
}

func (BasicType) monoTypeNode() {}

// ArrayType is `[T]`.
type ArrayType struct {
	Element MonoType
}

func (ArrayType) monoTypeNode() {}

// ParameterKind tags a FunctionType parameter the same way the AST's
// ParameterType does.
type ParameterKind int

const (
	Required ParameterKind = iota
	Optional
	Pipe
)

// Parameter is one entry of a FunctionType's parameter list.
type Parameter struct {
	Kind ParameterKind
	Name string
	Type MonoType
}

// FunctionType is a function signature type, `(params) => Return`.
type FunctionType struct {
	Parameters []*Parameter
	Return     MonoType
}

func (FunctionType) monoTypeNode() {}

// Row is a structural-record representation: empty, a variable, or a head
// property extending a tail row.
type Row interface {
	rowNode()
}

// RowEmpty is the closed-record terminator.
type RowEmpty struct{}

func (RowEmpty) rowNode() {}

// RowVar is an open row bound to a type variable.
type RowVar struct {
	TypeVar TypeVar
}

func (RowVar) rowNode() {}

// RowProperty is a single `key: type` entry of a RowExtension.
type RowProperty struct {
	Key   string
	Value MonoType
}

// RowExtension extends tail with one more property. Record type lowering
// folds an AST RecordType's properties right-to-left into a chain of these,
// so the first-written property ends up outermost (see DESIGN.md).
type RowExtension struct {
	Head RowProperty
	Tail Row
}

func (RowExtension) rowNode() {}

// RecordType is a MonoType wrapping a Row.
type RecordType struct {
	Row Row
}

func (RecordType) monoTypeNode() {}

// VectorType is the vectorization pass's target type, `Vector(T)`.
type VectorType struct {
	Element MonoType
}

func (VectorType) monoTypeNode() {}
