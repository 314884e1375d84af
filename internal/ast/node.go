package ast

import (
	"ember/internal/source"
	"ember/internal/token"
)

// Kind enumerates node variants.
type Kind uint8

const (
	KindAssignment Kind = iota
	KindFunctionCall
	KindIf
	KindUnary
	KindBinary
	KindNumberLiteral
	KindStringLiteral
	KindVariableRef
)

var kindNames = [...]string{
	KindAssignment:    "Assignment",
	KindFunctionCall:  "FunctionCall",
	KindIf:            "If",
	KindUnary:         "Unary",
	KindBinary:        "Binary",
	KindNumberLiteral: "NumberLiteral",
	KindStringLiteral: "StringLiteral",
	KindVariableRef:   "VariableRef",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Range locates a node in the source: its byte span and start position.
type Range struct {
	Span source.Span
	Pos  token.Position
}

// Loc returns the node's source range.
func (r Range) Loc() Range { return r }

// RangeOf builds the range of a single token.
func RangeOf(tok token.Token) Range {
	return Range{Span: tok.Span, Pos: tok.Pos}
}

// Cover extends r to the end of other.
func (r Range) Cover(other Range) Range {
	r.Span = r.Span.Cover(other.Span)
	return r
}

// Node is implemented by every tree node.
type Node interface {
	Kind() Kind
	Loc() Range
}

// Expr is a node producing a value.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a node that may appear in a statement list.
type Stmt interface {
	Node
	stmtNode()
}
