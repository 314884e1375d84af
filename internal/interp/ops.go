package interp

import (
	"ember/internal/ast"
)

func unary(e *ast.Unary, v Value) (Value, error) {
	switch e.Operator {
	case ast.UnaryNeg:
		n, ok := v.AsNumber()
		if !ok {
			return Null(), &TypeError{Op: e.Operator.String(), Operands: []ValueKind{v.Kind()}, At: e.Range}
		}
		return Number(-n), nil
	case ast.UnaryPlus:
		return v, nil
	case ast.UnaryNot:
		return Bool(!v.Truthy()), nil
	}
	return Null(), &InvalidNodeError{Kind: e.Kind(), Reason: "unknown operator " + e.Operator.String(), At: e.Range}
}

func binary(e *ast.Binary, l, r Value) (Value, error) {
	mismatch := func() (Value, error) {
		return Null(), &TypeError{Op: e.Operator.String(), Operands: []ValueKind{l.Kind(), r.Kind()}, At: e.Range}
	}
	switch e.Operator {
	case ast.BinaryAnd:
		return Bool(l.Truthy() && r.Truthy()), nil
	case ast.BinaryOr:
		return Bool(l.Truthy() || r.Truthy()), nil
	case ast.BinaryEq:
		return Bool(l.Equal(r)), nil
	case ast.BinaryNe:
		return Bool(!l.Equal(r)), nil
	case ast.BinaryAdd:
		if x, y, ok := numbers(l, r); ok {
			return Number(x + y), nil
		}
		if concatenable(l, r) {
			return String(l.String() + r.String()), nil
		}
		return mismatch()
	case ast.BinarySub, ast.BinaryMul, ast.BinaryDiv:
		x, y, ok := numbers(l, r)
		if !ok {
			return mismatch()
		}
		switch e.Operator {
		case ast.BinarySub:
			return Number(x - y), nil
		case ast.BinaryMul:
			return Number(x * y), nil
		}
		if y == 0 {
			return Null(), &DivisionByZeroError{At: e.Range}
		}
		return Number(x / y), nil
	case ast.BinaryLt, ast.BinaryGt, ast.BinaryLe, ast.BinaryGe:
		c, ok := compare(l, r)
		if !ok {
			return mismatch()
		}
		if c == unordered {
			return Bool(false), nil
		}
		switch e.Operator {
		case ast.BinaryLt:
			return Bool(c < 0), nil
		case ast.BinaryGt:
			return Bool(c > 0), nil
		case ast.BinaryLe:
			return Bool(c <= 0), nil
		}
		return Bool(c >= 0), nil
	}
	return Null(), &InvalidNodeError{Kind: e.Kind(), Reason: "unknown operator " + e.Operator.String(), At: e.Range}
}

func numbers(l, r Value) (float64, float64, bool) {
	x, ok1 := l.AsNumber()
	y, ok2 := r.AsNumber()
	return x, y, ok1 && ok2
}

// concatenable: at least one string, and no null.
func concatenable(l, r Value) bool {
	if l.Kind() == KindNull || r.Kind() == KindNull {
		return false
	}
	return l.Kind() == KindString || r.Kind() == KindString
}

// compare orders two numbers or two strings. A NaN operand yields
// unordered, which makes every relational operator false.
func compare(l, r Value) (int, bool) {
	if x, y, ok := numbers(l, r); ok {
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		case x == y:
			return 0, true
		}
		return unordered, true
	}
	x, ok1 := l.AsString()
	y, ok2 := r.AsString()
	if !ok1 || !ok2 {
		return 0, false
	}
	switch {
	case x < y:
		return -1, true
	case x > y:
		return 1, true
	}
	return 0, true
}

const unordered = 2
