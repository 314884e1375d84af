package ast

type Unary struct {
	Range
	Operator UnaryOp
	Operand  Expr
}

type Binary struct {
	Range
	Operator BinaryOp
	Left     Expr
	Right    Expr
}

// NumberLiteral keeps the digit run as written.
type NumberLiteral struct {
	Range
	Text string
}

// StringLiteral holds the decoded string value.
type StringLiteral struct {
	Range
	Text string
}

type VariableRef struct {
	Range
	Name string
}

func (*Unary) Kind() Kind         { return KindUnary }
func (*Binary) Kind() Kind        { return KindBinary }
func (*NumberLiteral) Kind() Kind { return KindNumberLiteral }
func (*StringLiteral) Kind() Kind { return KindStringLiteral }
func (*VariableRef) Kind() Kind   { return KindVariableRef }

func (*Unary) exprNode()         {}
func (*Binary) exprNode()        {}
func (*NumberLiteral) exprNode() {}
func (*StringLiteral) exprNode() {}
func (*VariableRef) exprNode()   {}
