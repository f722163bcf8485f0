// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package value defines the values read and written by the rjson packages:
// null, Booleans, numbers of a declared width, strings, arrays and objects.
//
// Scalars are comparable Go values. Arrays and objects are pointers, so a
// container may hold itself, directly or through other containers.
package value

import (
	"fmt"
	"math"
)

// A Value is an arbitrary value. The concrete type is one of Null, Bool,
// String, Int32, Int64, Float32, Float64, *Array, or *Object.
type Value interface {
	// Kind reports the kind of the value.
	Kind() Kind
}

// Kind enumerates the kinds of values.
type Kind byte

// Constants defining the valid Kind values.
const (
	InvalidKind Kind = iota
	NullKind
	BoolKind
	NumberKind
	StringKind
	ArrayKind
	ObjectKind
)

var kindStr = [...]string{
	InvalidKind: "invalid",
	NullKind:    "null",
	BoolKind:    "bool",
	NumberKind:  "number",
	StringKind:  "string",
	ArrayKind:   "array",
	ObjectKind:  "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[InvalidKind]
	}
	return kindStr[k]
}

// KindOf reports the kind of v, treating a nil Value as null.
func KindOf(v Value) Kind {
	if v == nil {
		return NullKind
	}
	return v.Kind()
}

// IsContainer reports whether v is an array or an object.
func IsContainer(v Value) bool {
	switch v.(type) {
	case *Array, *Object:
		return true
	}
	return false
}

// Null represents the null constant.
type Null struct{}

func (Null) Kind() Kind { return NullKind }

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind { return BoolKind }

// A String is a string value.
type String string

func (String) Kind() Kind { return StringKind }

// NumberType enumerates the declared widths of numbers.
type NumberType byte

// Constants defining the valid NumberType values.
const (
	Int32Type NumberType = iota + 1
	Int64Type
	Float32Type
	Float64Type
)

func (t NumberType) String() string {
	switch t {
	case Int32Type:
		return "int32"
	case Int64Type:
		return "int64"
	case Float32Type:
		return "float32"
	case Float64Type:
		return "float64"
	default:
		return fmt.Sprintf("NumberType(%d)", t)
	}
}

// A Number is a numeric value with a declared width.
type Number interface {
	Value

	// NumberType reports the declared width of the number.
	NumberType() NumberType

	// AsFloat reports the value of the number as a float64.
	AsFloat() float64

	// AsInt reports the value of the number as an int64, and whether that
	// conversion is exact.
	AsInt() (int64, bool)
}

// An Int32 is a 32-bit integer.
type Int32 int32

func (Int32) Kind() Kind             { return NumberKind }
func (Int32) NumberType() NumberType { return Int32Type }
func (z Int32) AsFloat() float64     { return float64(z) }
func (z Int32) AsInt() (int64, bool) { return int64(z), true }

// An Int64 is a 64-bit integer.
type Int64 int64

func (Int64) Kind() Kind             { return NumberKind }
func (Int64) NumberType() NumberType { return Int64Type }
func (z Int64) AsFloat() float64     { return float64(z) }
func (z Int64) AsInt() (int64, bool) { return int64(z), true }

// A Float32 is a 32-bit floating-point value.
type Float32 float32

func (Float32) Kind() Kind             { return NumberKind }
func (Float32) NumberType() NumberType { return Float32Type }
func (f Float32) AsFloat() float64     { return float64(f) }
func (f Float32) AsInt() (int64, bool) { return floatToInt(float64(f)) }

// A Float64 is a 64-bit floating-point value.
type Float64 float64

func (Float64) Kind() Kind             { return NumberKind }
func (Float64) NumberType() NumberType { return Float64Type }
func (f Float64) AsFloat() float64     { return float64(f) }
func (f Float64) AsInt() (int64, bool) { return floatToInt(float64(f)) }

func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// An Array is an ordered sequence of values.
type Array struct {
	Values []Value
}

// NewArray constructs an array containing the given values.
func NewArray(vs ...Value) *Array {
	a := &Array{Values: make([]Value, 0, len(vs))}
	a.Append(vs...)
	return a
}

func (*Array) Kind() Kind { return ArrayKind }

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.Values) }

// Append adds vs to the end of a. A nil value is stored as Null.
func (a *Array) Append(vs ...Value) {
	for _, v := range vs {
		a.Values = append(a.Values, orNull(v))
	}
}

// Set replaces the element at offset i of a, which must be in range.
func (a *Array) Set(i int, v Value) { a.Values[i] = orNull(v) }

func (a *Array) String() string { return fmt.Sprintf("Array(len=%d)", len(a.Values)) }

func orNull(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}
