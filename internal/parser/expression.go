package parser

import (
	"ember/internal/ast"
	"ember/internal/comb"
	"ember/internal/token"
)

type opStep = comb.Pair[token.Token, ast.Expr]

// operator matches any of the given operator texts.
func operator(texts ...string) comb.Parser[token.Token] {
	ps := make([]comb.Parser[token.Token], len(texts))
	for i, text := range texts {
		ps[i] = comb.MatchValue(token.Operator, text)
	}
	return comb.Label("operator", comb.Alternation(ps...))
}

// chainLeft parses operand (op operand)* and folds the steps into a
// left-leaning tree, so "a - b - c" becomes (a - b) - c.
func chainLeft(operand comb.Parser[ast.Expr], ops ...string) comb.Parser[ast.Expr] {
	steps := comb.ZeroOrMore(comb.Then(operator(ops...), operand))
	return comb.Map(comb.Then(operand, steps), func(p comb.Pair[ast.Expr, []opStep]) ast.Expr {
		left := p.First
		for _, step := range p.Second {
			op, ok := ast.ParseBinaryOp(step.First.Text)
			if !ok {
				panic("parser: operator table out of sync: " + step.First.Text)
			}
			left = &ast.Binary{
				Range:    left.Loc().Cover(step.Second.Loc()),
				Operator: op,
				Left:     left,
				Right:    step.Second,
			}
		}
		return left
	})
}

func (g *grammar) buildExpression() {
	expr := comb.Lazy(func() comb.Parser[ast.Expr] { return g.expr })

	paren := comb.Between(comb.Match(token.ParenStart), expr, comb.Match(token.ParenEnd))

	number := comb.Map(comb.Match(token.Number), func(tok token.Token) ast.Expr {
		return &ast.NumberLiteral{Range: ast.RangeOf(tok), Text: tok.Text}
	})
	str := comb.Map(comb.Match(token.String), func(tok token.Token) ast.Expr {
		return &ast.StringLiteral{Range: ast.RangeOf(tok), Text: tok.Text}
	})
	variable := comb.Map(comb.Match(token.Name), func(tok token.Token) ast.Expr {
		return &ast.VariableRef{Range: ast.RangeOf(tok), Name: tok.Text}
	})
	call := comb.Map(g.call, func(fc *ast.FunctionCall) ast.Expr { return fc })

	primary := comb.Label("expression", comb.Alternation(paren, call, number, str, variable))

	prefixed := comb.Map(comb.Then(operator("-", "+", "!"), primary), func(p comb.Pair[token.Token, ast.Expr]) ast.Expr {
		op, _ := ast.ParseUnaryOp(p.First.Text)
		return &ast.Unary{
			Range:    ast.RangeOf(p.First).Cover(p.Second.Loc()),
			Operator: op,
			Operand:  p.Second,
		}
	})
	unary := comb.Label("expression", comb.Alternation(prefixed, primary))

	mul := chainLeft(unary, "*", "/")
	additive := chainLeft(mul, "+", "-")
	relational := chainLeft(additive, "<=", ">=", "<", ">")
	equality := chainLeft(relational, "==", "!=")
	g.expr = chainLeft(equality, "&&", "||")
}

func (g *grammar) buildCall() {
	expr := comb.Lazy(func() comb.Parser[ast.Expr] { return g.expr })

	rest := comb.ZeroOrMore(comb.Right(comb.Match(token.Comma), expr))
	list := comb.Map(comb.Then(expr, rest), func(p comb.Pair[ast.Expr, []ast.Expr]) []ast.Expr {
		return append([]ast.Expr{p.First}, p.Second...)
	})
	args := comb.Optional(list, nil)

	head := comb.Then(comb.Match(token.Name), comb.Right(comb.Match(token.ParenStart), args))
	g.call = comb.Map(comb.Then(head, comb.Match(token.ParenEnd)),
		func(p comb.Pair[comb.Pair[token.Token, []ast.Expr], token.Token]) *ast.FunctionCall {
			name := p.First.First
			return &ast.FunctionCall{
				Range:     ast.RangeOf(name).Cover(ast.RangeOf(p.Second)),
				Name:      name.Text,
				Arguments: p.First.Second,
			}
		})
}
