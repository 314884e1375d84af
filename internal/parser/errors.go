package parser

import (
	"fmt"

	"ember/internal/comb"
	"ember/internal/source"
	"ember/internal/token"
)

// SyntaxError reports the farthest point the grammar could reach.
type SyntaxError struct {
	Pos      token.Position
	Span     source.Span
	Found    token.Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: expected %s, found %s", e.Pos, e.ExpectedString(), e.Found.Describe())
}

// ExpectedString joins the expectations as "a, b or c".
func (e *SyntaxError) ExpectedString() string {
	return comb.Failure{Expected: e.Expected}.ExpectedString()
}

// Line returns the 0-based line of the offending token.
func (e *SyntaxError) Line() uint32 { return e.Pos.Line }

// Column returns the 0-based column of the offending token.
func (e *SyntaxError) Column() uint32 { return e.Pos.Column }
