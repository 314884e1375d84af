package ast

// Assignment stores the value of Expression under Name.
type Assignment struct {
	Range
	Name       string
	Expression Expr
}

// FunctionCall invokes a host function. It is both a statement and an expression.
type FunctionCall struct {
	Range
	Name      string
	Arguments []Expr
}

// If runs Body when Condition is truthy, ElseBody otherwise. ElseBody may be empty.
type If struct {
	Range
	Condition Expr
	Body      []Stmt
	ElseBody  []Stmt
}

func (*Assignment) Kind() Kind   { return KindAssignment }
func (*FunctionCall) Kind() Kind { return KindFunctionCall }
func (*If) Kind() Kind           { return KindIf }

func (*Assignment) stmtNode()   {}
func (*FunctionCall) stmtNode() {}
func (*If) stmtNode()           {}

func (*FunctionCall) exprNode() {}
