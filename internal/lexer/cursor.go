package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"ember/internal/source"
	"ember/internal/token"
)

// Cursor walks the source text one character (rune) at a time and keeps
// 0-based line/column bookkeeping.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32

	line uint32
	col  uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{
		File:  f,
		Limit: limit,
	}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// HasMore reports whether at least one character is left.
func (c *Cursor) HasMore() bool {
	return !c.EOF()
}

// PeekByte читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) PeekByte() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekRune returns the next character without consuming it.
func (c *Cursor) PeekRune() (rune, int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.File.Content[c.Off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
}

// Peek returns the next n characters, or fewer at the end of input.
func (c *Cursor) Peek(n int) string {
	end := c.Off
	for i := 0; i < n && end < c.Limit; i++ {
		_, sz := utf8.DecodeRune(c.File.Content[end:c.Limit])
		end += uint32(sz)
	}
	return string(c.File.Content[c.Off:end])
}

// Advance consumes n characters. Every consumed '\n' bumps the line and
// resets the column; any other character bumps the column.
func (c *Cursor) Advance(n int) {
	for i := 0; i < n && !c.EOF(); i++ {
		r, sz := c.PeekRune()
		c.Off += uint32(sz)
		if r == '\n' {
			c.line++
			c.col = 0
			continue
		}
		c.col++
	}
}

// Line returns the 0-based line of the next character.
func (c *Cursor) Line() uint32 { return c.line }

// Column returns the 0-based column of the next character.
func (c *Cursor) Column() uint32 { return c.col }

// Pos снимок текущей позиции
func (c *Cursor) Pos() token.Position {
	return token.Position{Offset: c.Off, Line: c.line, Column: c.col}
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark struct {
	off, line, col uint32
}

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark{off: c.Off, line: c.line, col: c.col}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off, c.line, c.col = m.off, m.line, m.col
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: m.off, End: c.Off}
}

// TextFrom returns the raw source text consumed since the mark.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[m.off:c.Off])
}
