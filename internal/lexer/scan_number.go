package lexer

import "ember/internal/token"

// scanNumber reads the longest run of ASCII digits. Signs and fractions are
// not part of the literal.
func (lx *Lexer) scanNumber() (token.Kind, string, bool) {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.PeekByte()) {
		lx.cursor.Advance(1)
	}
	if lx.cursor.Mark() == start {
		return token.Invalid, "", false
	}
	return token.Number, lx.cursor.TextFrom(start), true
}
