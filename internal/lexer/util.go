package lexer

// ===== Классификаторы (только ASCII) =====

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isNameStart(b byte) bool { return b >= 'a' && b <= 'z' }

func isNameContinue(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || isDec(b)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}
