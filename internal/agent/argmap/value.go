package argmap

import (
	"strconv"
)

// Kind identifies the coerced type of a configuration value.
type Kind int

const (
	// KindText is stored verbatim.
	KindText Kind = iota
	// KindInt is a base-10 signed 32-bit integer.
	KindInt
	// KindFloat is a 32-bit floating point number.
	KindFloat
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	default:
		return "text"
	}
}

// Value is a single coerced configuration value.
type Value struct {
	kind Kind
	i    int
	f    float32
	s    string
}

// IntValue returns an integer value.
func IntValue(v int) Value { return Value{kind: KindInt, i: v} }

// FloatValue returns a float value.
func FloatValue(v float32) Value { return Value{kind: KindFloat, f: v} }

// TextValue returns a text value.
func TextValue(v string) Value { return Value{kind: KindText, s: v} }

// Kind returns the coerced type.
func (v Value) Kind() Kind { return v.kind }

// Int returns the integer and true when v is an integer.
func (v Value) Int() (int, bool) { return v.i, v.kind == KindInt }

// Float returns the float and true when v is a float.
func (v Value) Float() (float32, bool) { return v.f, v.kind == KindFloat }

// Text returns the text and true when v is text.
func (v Value) Text() (string, bool) { return v.s, v.kind == KindText }

// Any returns the underlying Go value (int, float32 or string).
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.s
	}
}

// String formats the value the way it would appear in a configuration string.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(float64(v.f), 'g', -1, 32)
	default:
		return v.s
	}
}
