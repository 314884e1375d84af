package parser

import (
	"sync"

	"ember/internal/ast"
	"ember/internal/comb"
	"ember/internal/token"
)

// grammar holds the compiled rules. Rules are stateless closures over the
// cursor they are given, so one grammar serves concurrent parses.
type grammar struct {
	expr    comb.Parser[ast.Expr]
	call    comb.Parser[*ast.FunctionCall]
	stmt    comb.Parser[ast.Stmt]
	program comb.Parser[[]ast.Stmt]
	exprEnd comb.Parser[ast.Expr]
}

var rules = sync.OnceValue(newGrammar)

func newGrammar() *grammar {
	g := &grammar{}
	g.buildCall()
	g.buildExpression()
	g.buildStatements()
	g.program = comb.Left(comb.ZeroOrMore(g.stmt), comb.End())
	g.exprEnd = comb.Left(comb.Label("expression", g.expr), comb.End())
	return g
}

// terminator accepts ";" and also an implied one before "}" or at the end.
func terminator() comb.Parser[token.Token] {
	return comb.Label("';'", comb.Alternation(
		comb.Match(token.EndOfLine),
		comb.Ahead(comb.Match(token.CodeBlockEnd)),
		comb.End(),
	))
}

type block struct {
	stmts []ast.Stmt
	close token.Token
}

func (g *grammar) buildStatements() {
	stmt := comb.Lazy(func() comb.Parser[ast.Stmt] { return g.stmt })

	body := comb.Map(
		comb.Then(comb.Right(comb.Match(token.CodeBlockStart), comb.ZeroOrMore(stmt)), comb.Match(token.CodeBlockEnd)),
		func(p comb.Pair[[]ast.Stmt, token.Token]) block {
			return block{stmts: p.First, close: p.Second}
		},
	)
	elseBody := comb.Optional(
		comb.Map(comb.Right(comb.MatchValue(token.Name, "else"), body), func(b block) *block { return &b }),
		nil,
	)

	cond := comb.Between(comb.Match(token.ParenStart), comb.Label("expression", g.expr), comb.Match(token.ParenEnd))
	head := comb.Then(comb.MatchValue(token.Keyword, "if"), cond)
	ifStmt := comb.Map(comb.Then(comb.Then(head, body), elseBody),
		func(p comb.Pair[comb.Pair[comb.Pair[token.Token, ast.Expr], block], *block]) ast.Stmt {
			kw, then, alt := p.First.First.First, p.First.Second, p.Second
			node := &ast.If{
				Range:     ast.RangeOf(kw).Cover(ast.RangeOf(then.close)),
				Condition: p.First.First.Second,
				Body:      then.stmts,
			}
			if alt != nil {
				node.ElseBody = alt.stmts
				node.Range = node.Range.Cover(ast.RangeOf(alt.close))
			}
			return node
		})

	callStmt := comb.Map(comb.Left(g.call, terminator()), func(fc *ast.FunctionCall) ast.Stmt { return fc })

	target := comb.Left(comb.Match(token.Name), comb.MatchValue(token.Operator, "="))
	assign := comb.Map(comb.Left(comb.Then(target, comb.Label("expression", g.expr)), terminator()),
		func(p comb.Pair[token.Token, ast.Expr]) ast.Stmt {
			return &ast.Assignment{
				Range:      ast.RangeOf(p.First).Cover(p.Second.Loc()),
				Name:       p.First.Text,
				Expression: p.Second,
			}
		})

	g.stmt = comb.Label("statement", comb.Alternation(ifStmt, callStmt, assign))
}
