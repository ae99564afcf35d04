package ast

import "time"

// StringLit is a non-interpolated string literal.
type StringLit struct {
	BaseNode
	Value string
}

func (*StringLit) expressionNode()  {}
func (*StringLit) propertyKeyNode() {}

// BooleanLit is `true` or `false`.
type BooleanLit struct {
	BaseNode
	Value bool
}

func (*BooleanLit) expressionNode() {}

// FloatLit is a floating-point literal.
type FloatLit struct {
	BaseNode
	Value float64
}

func (*FloatLit) expressionNode() {}

// IntegerLit is a signed 64-bit integer literal. A literal whose decimal
// value overflows int64 is still represented (Value is 0, with an
// over-range error attached to this node) rather than rejected outright.
type IntegerLit struct {
	BaseNode
	Value int64
}

func (*IntegerLit) expressionNode() {}

// UnsignedIntegerLit is an unsigned integer literal (trailing `u`).
type UnsignedIntegerLit struct {
	BaseNode
	Value uint64
}

func (*UnsignedIntegerLit) expressionNode() {}

// RegexpLit is a `/pattern/` regular-expression literal.
type RegexpLit struct {
	BaseNode
	Value string
}

func (*RegexpLit) expressionNode() {}

// DurationPair is a single <magnitude><unit> component of a DurationLit,
// e.g. (3, "mo").
type DurationPair struct {
	Magnitude int64
	Unit      string
}

// DurationLit is a duration literal, written as one or more concatenated
// <digits><unit> pairs (`1y3mo2w1d4h1m30s1ms2us70ns`) and rolled up by the
// parser into a single node in the order written.
type DurationLit struct {
	BaseNode
	Values []DurationPair
}

func (*DurationLit) expressionNode() {}

// DateTimeLit is an RFC-3339 instant literal.
type DateTimeLit struct {
	BaseNode
	Value time.Time
}

func (*DateTimeLit) expressionNode() {}

// PipeLit is the `<-` token used as a function parameter's default value,
// marking that parameter as the pipe target. It is a sentinel: valid only
// as a parameter default, an error anywhere else (enforced at semantic
// conversion, see spec.md §4.3.2).
type PipeLit struct {
	BaseNode
}

func (*PipeLit) expressionNode() {}
