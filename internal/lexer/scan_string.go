package lexer

import (
	"strings"

	"ember/internal/token"
)

// scanString reads a '-delimited literal. A backslash makes the following
// character literal (including another backslash or a quote). The token text
// is the decoded value.
func (lx *Lexer) scanString() (token.Kind, string, bool, error) {
	if lx.cursor.PeekByte() != '\'' {
		return token.Invalid, "", false, nil
	}
	start := lx.cursor.Mark()
	startPos := lx.cursor.Pos()
	lx.cursor.Advance(1) // opening '

	var sb strings.Builder
	escaping := false
	for !lx.cursor.EOF() {
		r, _ := lx.cursor.PeekRune()
		switch {
		case escaping:
			sb.WriteRune(r)
			escaping = false
		case r == '\\':
			escaping = true
		case r == '\'':
			lx.cursor.Advance(1)
			return token.String, sb.String(), true, nil
		default:
			sb.WriteRune(r)
		}
		lx.cursor.Advance(1)
	}

	// EOF без закрывающей кавычки
	return token.Invalid, "", false, &LexError{
		Kind: ErrUnterminatedString,
		Pos:  startPos,
		Span: lx.cursor.SpanFrom(start),
		Char: '\'',
	}
}
