package ast

// UnaryOp enumerates prefix operators.
type UnaryOp uint8

const (
	UnaryNeg UnaryOp = iota // -
	UnaryPlus               // +
	UnaryNot                // !
)

func (op UnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryPlus:
		return "+"
	case UnaryNot:
		return "!"
	}
	return "?"
}

// ParseUnaryOp maps operator text to a UnaryOp.
func ParseUnaryOp(s string) (UnaryOp, bool) {
	switch s {
	case "-":
		return UnaryNeg, true
	case "+":
		return UnaryPlus, true
	case "!":
		return UnaryNot, true
	}
	return 0, false
}

// BinaryOp enumerates infix operators.
type BinaryOp uint8

const (
	BinaryAdd BinaryOp = iota // +
	BinarySub                 // -
	BinaryMul                 // *
	BinaryDiv                 // /
	BinaryAnd                 // &&
	BinaryOr                  // ||
	BinaryEq                  // ==
	BinaryNe                  // !=
	BinaryLt                  // <
	BinaryGt                  // >
	BinaryLe                  // <=
	BinaryGe                  // >=
)

var binaryOpText = [...]string{
	BinaryAdd: "+",
	BinarySub: "-",
	BinaryMul: "*",
	BinaryDiv: "/",
	BinaryAnd: "&&",
	BinaryOr:  "||",
	BinaryEq:  "==",
	BinaryNe:  "!=",
	BinaryLt:  "<",
	BinaryGt:  ">",
	BinaryLe:  "<=",
	BinaryGe:  ">=",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpText) {
		return binaryOpText[op]
	}
	return "?"
}

// ParseBinaryOp maps operator text to a BinaryOp.
func ParseBinaryOp(s string) (BinaryOp, bool) {
	for op, text := range binaryOpText {
		if text == s {
			return BinaryOp(op), true
		}
	}
	return 0, false
}
