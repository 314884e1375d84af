package interp

import (
	"math"
	"strconv"
)

// ValueKind is the dynamic type of a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindNumber
	KindString
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	}
	return "unknown"
}

// Value is a runtime value. The zero Value is null.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
}

func Null() Value               { return Value{} }
func Number(n float64) Value    { return Value{kind: KindNumber, num: n} }
func String(s string) Value     { return Value{kind: KindString, str: s} }
func Bool(b bool) Value         { return Value{kind: KindBool, b: b} }
func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsNull() bool    { return v.kind == KindNull }

// AsNumber returns the number and whether v holds one.
func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

// AsString returns the string and whether v holds one.
func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

// AsBool returns the boolean and whether v holds one.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// Truthy: null and "" are false, numbers are true unless 0 or NaN.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindString:
		return v.str != ""
	case KindBool:
		return v.b
	}
	return false
}

// Equal compares values of the same kind; values of different kinds are
// never equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	}
	return true
}

// String returns the display form used by print and string concatenation.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return "null"
}

// Repr is like String but quotes strings, for the REPL.
func (v Value) Repr() string {
	if v.kind == KindString {
		return "'" + v.str + "'"
	}
	return v.String()
}

// FormatNumber renders n in the shortest form that parses back to n.
// Plain notation is used below 1e21, exponent notation above.
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	if abs := math.Abs(n); abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FromGo converts a decoded config value (as produced by a TOML decoder)
// into a Value.
func FromGo(x any) (Value, bool) {
	switch x := x.(type) {
	case nil:
		return Null(), true
	case bool:
		return Bool(x), true
	case string:
		return String(x), true
	case int64:
		return Number(float64(x)), true
	case int:
		return Number(float64(x)), true
	case float64:
		return Number(x), true
	}
	return Null(), false
}
