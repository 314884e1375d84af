// Package token defines lexical token kinds for the ember language.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span, except for
//     string literals (decoded value) and the keyword (canonical lowercase).
//   - Position is captured before the recognizer consumed any character.
//   - Whitespace tokens are produced only when the lexer is asked to keep them.
//   - A token stream produced by the lexer ends with exactly one EOF token.
package token
