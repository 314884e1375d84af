package lexer

import "ember/internal/token"

var twoCharOps = [...]string{"==", "!=", "&&", "||", "<=", ">="}

var oneCharOps = [...]string{"!", "+", "-", "*", "/", "<", ">", "="}

// scanOperator tries the two-character table before the single-character one.
func (lx *Lexer) scanOperator() (token.Kind, string, bool) {
	two := lx.cursor.Peek(2)
	for _, op := range twoCharOps {
		if two == op {
			lx.cursor.Advance(2)
			return token.Operator, op, true
		}
	}
	one := lx.cursor.Peek(1)
	for _, op := range oneCharOps {
		if one == op {
			lx.cursor.Advance(1)
			return token.Operator, op, true
		}
	}
	return token.Invalid, "", false
}

// scanPunct handles the single-character punctuation tokens.
func (lx *Lexer) scanPunct() (token.Kind, string, bool) {
	var kind token.Kind
	switch lx.cursor.PeekByte() {
	case '(':
		kind = token.ParenStart
	case ')':
		kind = token.ParenEnd
	case '{':
		kind = token.CodeBlockStart
	case '}':
		kind = token.CodeBlockEnd
	case ';':
		kind = token.EndOfLine
	case ',':
		kind = token.Comma
	default:
		return token.Invalid, "", false
	}
	text := lx.cursor.Peek(1)
	lx.cursor.Advance(1)
	return kind, text, true
}
