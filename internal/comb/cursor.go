package comb

import (
	"slices"
	"strings"
	"unicode/utf8"

	"ember/internal/token"
)

// Cursor is a rewindable position in a token list with a stack of saved
// positions. Save/Restore/Discard must be used in LIFO order.
type Cursor struct {
	tokens []token.Token
	eof    token.Token
	pos    int
	saved  []int

	failPos  int
	expected []string
}

// NewCursor wraps tokens. A trailing EOF token, if present, is not part of the
// stream: it only supplies the end-of-input position.
func NewCursor(tokens []token.Token) *Cursor {
	c := &Cursor{failPos: -1}
	if n := len(tokens); n > 0 && tokens[n-1].Kind == token.EOF {
		c.eof = tokens[n-1]
		tokens = tokens[:n-1]
	} else if n > 0 {
		last := tokens[n-1]
		c.eof = token.Token{
			Kind: token.EOF,
			Span: last.Span,
			Pos:  token.Position{Offset: last.Span.End, Line: last.Pos.Line, Column: last.Pos.Column + runeLen(last)},
		}
		c.eof.Span.Start = last.Span.End
	} else {
		c.eof = token.Token{Kind: token.EOF}
	}
	c.tokens = tokens
	return c
}

// runeLen is the width of tok in source runes. Quotes and escapes are
// ASCII, so only the multi-byte runes of the text shrink the byte length.
func runeLen(tok token.Token) uint32 {
	extra := len(tok.Text) - utf8.RuneCountInString(tok.Text)
	return tok.Span.Len() - uint32(extra) //nolint:gosec // extra <= len(Text) <= Span.Len()
}

// Current returns the token under the cursor; ok is false at the end.
func (c *Cursor) Current() (token.Token, bool) {
	if c.pos >= len(c.tokens) {
		return c.eof, false
	}
	return c.tokens[c.pos], true
}

// Advance moves past the current token. It is a no-op at the end.
func (c *Cursor) Advance() {
	if c.pos < len(c.tokens) {
		c.pos++
	}
}

// HasMore reports whether any token is left.
func (c *Cursor) HasMore() bool { return c.pos < len(c.tokens) }

// Pos returns the index of the current token.
func (c *Cursor) Pos() int { return c.pos }

// Depth returns the number of saved positions on the stack.
func (c *Cursor) Depth() int { return len(c.saved) }

// Save pushes the current position.
func (c *Cursor) Save() {
	c.saved = append(c.saved, c.pos)
}

// Restore pops the last saved position and jumps back to it.
func (c *Cursor) Restore() {
	n := len(c.saved) - 1
	if n < 0 {
		panic("comb: Restore without Save")
	}
	c.pos = c.saved[n]
	c.saved = c.saved[:n]
}

// Discard pops the last saved position without moving (the match is confirmed).
func (c *Cursor) Discard() {
	n := len(c.saved) - 1
	if n < 0 {
		panic("comb: Discard without Save")
	}
	c.saved = c.saved[:n]
}

// EOF returns the end-of-input token.
func (c *Cursor) EOF() token.Token { return c.eof }

// Expect records that desc was expected at the current position.
// Only the farthest position is kept.
func (c *Cursor) Expect(desc string) {
	switch {
	case c.pos > c.failPos:
		c.failPos = c.pos
		c.expected = append(c.expected[:0], desc)
	case c.pos == c.failPos:
		if !slices.Contains(c.expected, desc) {
			c.expected = append(c.expected, desc)
		}
	}
}

// Failure describes the farthest point where the parse got stuck.
type Failure struct {
	Found    token.Token
	Expected []string
}

// ExpectedString joins the expectations as "a, b or c".
func (f Failure) ExpectedString() string {
	switch len(f.Expected) {
	case 0:
		return "nothing"
	case 1:
		return f.Expected[0]
	}
	return strings.Join(f.Expected[:len(f.Expected)-1], ", ") + " or " + f.Expected[len(f.Expected)-1]
}

// Failure returns the farthest recorded expectation. When nothing was
// recorded it reports the current token.
func (c *Cursor) Failure() Failure {
	pos := c.failPos
	if pos < 0 {
		pos = c.pos
	}
	found := c.eof
	if pos < len(c.tokens) {
		found = c.tokens[pos]
	}
	exp := slices.Clone(c.expected)
	slices.Sort(exp)
	return Failure{Found: found, Expected: exp}
}

type failState struct {
	pos      int
	expected []string
}

func (c *Cursor) failSnapshot() failState {
	return failState{pos: c.failPos, expected: slices.Clone(c.expected)}
}

func (c *Cursor) failRestore(s failState) {
	c.failPos = s.pos
	c.expected = s.expected
}
