package lexer

import (
	"strings"

	"ember/internal/token"
)

// scanKeyword matches "if" case-insensitively by a two-character lookahead.
// It does not look further: "iffy" lexes as keyword "if" followed by name "fy".
func (lx *Lexer) scanKeyword() (token.Kind, string, bool) {
	if strings.EqualFold(lx.cursor.Peek(2), "if") {
		lx.cursor.Advance(2)
		return token.Keyword, "if", true
	}
	return token.Invalid, "", false
}

// scanName reads [a-z][a-zA-Z0-9]*.
func (lx *Lexer) scanName() (token.Kind, string, bool) {
	if !isNameStart(lx.cursor.PeekByte()) {
		return token.Invalid, "", false
	}
	start := lx.cursor.Mark()
	lx.cursor.Advance(1)
	for isNameContinue(lx.cursor.PeekByte()) {
		lx.cursor.Advance(1)
	}
	return token.Name, lx.cursor.TextFrom(start), true
}
