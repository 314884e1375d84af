package comb

import (
	"fmt"

	"ember/internal/token"
)

// Parser matches a prefix of the stream at the cursor.
type Parser[T any] func(c *Cursor) (T, bool)

// Pair holds the results of Then.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Match succeeds iff the current token has the given kind; it consumes
// exactly that token.
func Match(kind token.Kind) Parser[token.Token] {
	return matchToken(kind, "", kind.Describe())
}

// MatchValue succeeds iff the current token has the given kind and text.
func MatchValue(kind token.Kind, value string) Parser[token.Token] {
	return matchToken(kind, value, fmt.Sprintf("'%s'", value))
}

func matchToken(kind token.Kind, value, desc string) Parser[token.Token] {
	return func(c *Cursor) (token.Token, bool) {
		tok, ok := c.Current()
		if !ok || !tok.Is(kind, value) {
			c.Expect(desc)
			return token.Token{}, false
		}
		c.Advance()
		return tok, true
	}
}

// End matches the end of input without consuming anything.
func End() Parser[token.Token] {
	return func(c *Cursor) (token.Token, bool) {
		if c.HasMore() {
			c.Expect(token.EOF.Describe())
			return token.Token{}, false
		}
		return c.EOF(), true
	}
}

// Sequence runs every parser in order. On the first failure the cursor goes
// back to where the sequence started.
func Sequence[T any](ps ...Parser[T]) Parser[[]T] {
	return func(c *Cursor) ([]T, bool) {
		c.Save()
		results := make([]T, 0, len(ps))
		for _, p := range ps {
			v, ok := p(c)
			if !ok {
				c.Restore()
				return nil, false
			}
			results = append(results, v)
		}
		c.Discard()
		return results, true
	}
}

// Alternation returns the first successful alternative. The cursor is
// restored between failed attempts.
func Alternation[T any](ps ...Parser[T]) Parser[T] {
	return func(c *Cursor) (T, bool) {
		for _, p := range ps {
			c.Save()
			if v, ok := p(c); ok {
				c.Discard()
				return v, true
			}
			c.Restore()
		}
		var zero T
		return zero, false
	}
}

// Optional returns def when p does not match. It never fails.
func Optional[T any](p Parser[T], def T) Parser[T] {
	return func(c *Cursor) (T, bool) {
		c.Save()
		if v, ok := p(c); ok {
			c.Discard()
			return v, true
		}
		c.Restore()
		return def, true
	}
}

// ZeroOrMore applies p until it fails once. It never fails.
func ZeroOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(c *Cursor) ([]T, bool) {
		return repeat(c, p), true
	}
}

// OneOrMore is ZeroOrMore that requires at least one match.
func OneOrMore[T any](p Parser[T]) Parser[[]T] {
	return func(c *Cursor) ([]T, bool) {
		results := repeat(c, p)
		if len(results) == 0 {
			return nil, false
		}
		return results, true
	}
}

func repeat[T any](c *Cursor, p Parser[T]) []T {
	var results []T
	for {
		start := c.Pos()
		c.Save()
		v, ok := p(c)
		if !ok {
			c.Restore()
			return results
		}
		c.Discard()
		results = append(results, v)
		// парсер, не продвинувший курсор, зациклил бы нас
		if c.Pos() == start {
			return results
		}
	}
}

// Map transforms the result of p.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(c *Cursor) (B, bool) {
		v, ok := p(c)
		if !ok {
			var zero B
			return zero, false
		}
		return f(v), true
	}
}

// Then runs pa followed by pb.
func Then[A, B any](pa Parser[A], pb Parser[B]) Parser[Pair[A, B]] {
	return func(c *Cursor) (Pair[A, B], bool) {
		c.Save()
		a, ok := pa(c)
		if !ok {
			c.Restore()
			return Pair[A, B]{}, false
		}
		b, ok := pb(c)
		if !ok {
			c.Restore()
			return Pair[A, B]{}, false
		}
		c.Discard()
		return Pair[A, B]{First: a, Second: b}, true
	}
}

// Left runs pa then pb and keeps the result of pa.
func Left[A, B any](pa Parser[A], pb Parser[B]) Parser[A] {
	return Map(Then(pa, pb), func(p Pair[A, B]) A { return p.First })
}

// Right runs pa then pb and keeps the result of pb.
func Right[A, B any](pa Parser[A], pb Parser[B]) Parser[B] {
	return Map(Then(pa, pb), func(p Pair[A, B]) B { return p.Second })
}

// Between keeps the result of p surrounded by open and close.
func Between[L, T, R any](open Parser[L], p Parser[T], close Parser[R]) Parser[T] {
	return Left(Right(open, p), close)
}

// Ahead succeeds when p would match, without consuming anything.
func Ahead[T any](p Parser[T]) Parser[T] {
	return func(c *Cursor) (T, bool) {
		c.Save()
		v, ok := p(c)
		c.Restore()
		return v, ok
	}
}

// Lazy defers construction of p, which lets grammars refer to rules that are
// defined later (or recursively).
func Lazy[T any](f func() Parser[T]) Parser[T] {
	return func(c *Cursor) (T, bool) {
		return f()(c)
	}
}

// Label names p for error reporting. When p fails without getting past its
// starting token, the inner expectations are replaced by desc.
func Label[T any](desc string, p Parser[T]) Parser[T] {
	return func(c *Cursor) (T, bool) {
		entry := c.Pos()
		outer := c.failSnapshot()
		c.failRestore(failState{pos: -1})

		v, ok := p(c)

		inner := c.failSnapshot()
		c.failRestore(outer)
		if !ok && inner.pos <= entry {
			c.Expect(desc)
			return v, false
		}
		c.merge(inner)
		return v, ok
	}
}

func (c *Cursor) merge(s failState) {
	if s.pos < 0 {
		return
	}
	saved := c.pos
	c.pos = s.pos
	for _, e := range s.expected {
		c.Expect(e)
	}
	c.pos = saved
}
