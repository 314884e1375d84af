package lexer

import (
	"fmt"

	"ember/internal/source"
	"ember/internal/token"
)

// LexErrorKind classifies lexical failures.
type LexErrorKind uint8

const (
	// ErrInvalidChar: no recognizer matched at the position.
	ErrInvalidChar LexErrorKind = iota
	// ErrUnterminatedString: end of input reached inside a string literal.
	ErrUnterminatedString
)

// LexError aborts tokenization. Pos is the 0-based position of the offending
// character (for unterminated strings, of the opening quote).
type LexError struct {
	Kind LexErrorKind
	Pos  token.Position
	Span source.Span
	Char rune
}

func (e *LexError) Error() string {
	switch e.Kind {
	case ErrUnterminatedString:
		return fmt.Sprintf("unterminated string literal starting at %s", e.Pos)
	default:
		return fmt.Sprintf("invalid character %q at %s", e.Char, e.Pos)
	}
}

// Line returns the 0-based line of the offending character.
func (e *LexError) Line() uint32 { return e.Pos.Line }

// Column returns the 0-based column of the offending character.
func (e *LexError) Column() uint32 { return e.Pos.Column }
