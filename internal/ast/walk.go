package ast

// Inspect traverses the tree depth-first, calling f for every node before its
// children. Returning false from f skips the children.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Assignment:
		Inspect(n.Expression, f)
	case *FunctionCall:
		for _, arg := range n.Arguments {
			Inspect(arg, f)
		}
	case *If:
		Inspect(n.Condition, f)
		for _, s := range n.Body {
			Inspect(s, f)
		}
		for _, s := range n.ElseBody {
			Inspect(s, f)
		}
	case *Unary:
		Inspect(n.Operand, f)
	case *Binary:
		Inspect(n.Left, f)
		Inspect(n.Right, f)
	case *NumberLiteral, *StringLiteral, *VariableRef:
	}
}

// Count returns the number of nodes in the statement list.
func Count(stmts []Stmt) int {
	total := 0
	for _, s := range stmts {
		Inspect(s, func(Node) bool {
			total++
			return true
		})
	}
	return total
}
