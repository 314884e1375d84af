package lexer

import "ember/internal/token"

// scanWhitespace reads a run of tab/CR/LF/space.
func (lx *Lexer) scanWhitespace() (token.Kind, string, bool) {
	start := lx.cursor.Mark()
	for isSpace(lx.cursor.PeekByte()) {
		lx.cursor.Advance(1)
	}
	if lx.cursor.Mark() == start {
		return token.Invalid, "", false
	}
	return token.Whitespace, lx.cursor.TextFrom(start), true
}
