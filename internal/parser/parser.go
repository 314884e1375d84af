package parser

import (
	"context"
	"strconv"

	"ember/internal/ast"
	"ember/internal/comb"
	"ember/internal/token"
	"ember/internal/trace"
)

// Parse builds the statement list of a whole program. tokens must not contain
// whitespace; a trailing EOF token is used for end-of-input positions.
func Parse(tokens []token.Token) ([]ast.Stmt, error) {
	return parseWith(tokens, rules().program)
}

// ParseExpression parses tokens as one expression followed by end of input.
func ParseExpression(tokens []token.Token) (ast.Expr, error) {
	return parseWith(tokens, rules().exprEnd)
}

// ParseContext is Parse wrapped in a "parse" trace span.
func ParseContext(ctx context.Context, tokens []token.Token) ([]ast.Stmt, error) {
	_, span := trace.Start(ctx, trace.ScopePass, "parse")
	stmts, err := Parse(tokens)
	if err != nil {
		span.End(err.Error())
		return nil, err
	}
	span.WithExtra("stmts", strconv.Itoa(len(stmts))).End("")
	return stmts, nil
}

func parseWith[T any](tokens []token.Token, p comb.Parser[T]) (T, error) {
	c := comb.NewCursor(tokens)
	v, ok := p(c)
	if !ok {
		var zero T
		return zero, syntaxError(c.Failure())
	}
	return v, nil
}

func syntaxError(f comb.Failure) *SyntaxError {
	return &SyntaxError{
		Pos:      f.Found.Pos,
		Span:     f.Found.Span,
		Found:    f.Found,
		Expected: f.Expected,
	}
}
