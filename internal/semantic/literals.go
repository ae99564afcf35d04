package semantic

import (
	"time"

	"github.com/cwbudde/flowql/internal/ast"
)

// Scalar literals carry no type slot: their MonoType is implied by their
// own kind and never needs to be solved for.

type StringLit struct {
	ast.BaseNode
	Value string
}

func (*StringLit) node()           {}
func (*StringLit) expressionNode() {}

type BooleanLit struct {
	ast.BaseNode
	Value bool
}

func (*BooleanLit) node()           {}
func (*BooleanLit) expressionNode() {}

type FloatLit struct {
	ast.BaseNode
	Value float64
}

func (*FloatLit) node()           {}
func (*FloatLit) expressionNode() {}

type IntegerLit struct {
	ast.BaseNode
	Value int64
}

func (*IntegerLit) node()           {}
func (*IntegerLit) expressionNode() {}

type UnsignedIntegerLit struct {
	ast.BaseNode
	Value uint64
}

func (*UnsignedIntegerLit) node()           {}
func (*UnsignedIntegerLit) expressionNode() {}

type RegexpLit struct {
	ast.BaseNode
	Value string
}

func (*RegexpLit) node()           {}
func (*RegexpLit) expressionNode() {}

// DurationPair mirrors ast.DurationPair.
type DurationPair struct {
	Magnitude int64
	Unit      string
}

type DurationLit struct {
	ast.BaseNode
	Values []DurationPair
}

func (*DurationLit) node()           {}
func (*DurationLit) expressionNode() {}

type DateTimeLit struct {
	ast.BaseNode
	Value time.Time
}

func (*DateTimeLit) node()           {}
func (*DateTimeLit) expressionNode() {}
