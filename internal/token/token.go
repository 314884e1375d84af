package token

import (
	"fmt"

	"ember/internal/source"
)

// Position is a 0-based line/column pair plus the absolute byte offset.
// String renders it 1-based for humans.
type Position struct {
	Offset uint32
	Line   uint32
	Column uint32
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
	Pos  Position
}

// Is reports whether the token has the given kind and, when value is
// non-empty, exactly that text.
func (t Token) Is(kind Kind, value string) bool {
	if t.Kind != kind {
		return false
	}
	return value == "" || t.Text == value
}

// Describe renders the token for diagnostics, e.g. `name "x"` or `'}'`.
func (t Token) Describe() string {
	switch t.Kind {
	case Number, Name, Operator, Keyword:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case String:
		return fmt.Sprintf("string '%s'", t.Text)
	default:
		return t.Kind.Describe()
	}
}
