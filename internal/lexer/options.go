package lexer

type Options struct {
	// KeepWhitespace retains whitespace tokens in the output. The parser
	// never sees them; tooling (token dumps, re-lex checks) may want them.
	KeepWhitespace bool
}
