package lexer

import (
	"testing"

	"ember/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.em", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	if !cursor.HasMore() {
		t.Fatal("Expected input at start")
	}
	if got := cursor.Peek(1); got != "a" {
		t.Errorf("Expected peek 'a', got %q", got)
	}
	cursor.Advance(1)
	if cursor.Line() != 0 || cursor.Column() != 1 {
		t.Errorf("after 'a': got %d:%d, want 0:1", cursor.Line(), cursor.Column())
	}

	cursor.Advance(1) // '\n'
	if cursor.Line() != 1 || cursor.Column() != 0 {
		t.Errorf("after newline: got %d:%d, want 1:0", cursor.Line(), cursor.Column())
	}

	cursor.Advance(1)
	if cursor.HasMore() {
		t.Error("Expected EOF at end")
	}
	if got := cursor.Peek(1); got != "" {
		t.Errorf("Expected empty peek at EOF, got %q", got)
	}
	// чтение за концом не падает и не двигает позицию
	cursor.Advance(3)
	if cursor.Off != 3 || cursor.Column() != 1 {
		t.Errorf("advance past end changed state: off=%d col=%d", cursor.Off, cursor.Column())
	}
}

func TestPeekTruncatesAtEnd(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	if got := cursor.Peek(2); got != "ab" {
		t.Errorf("Peek(2) = %q", got)
	}
	cursor.Advance(2)
	if got := cursor.Peek(2); got != "c" {
		t.Errorf("Peek(2) at end = %q, want \"c\"", got)
	}
}

func TestAdvanceCountsRunes(t *testing.T) {
	cursor := NewCursor(createFile("αβ\nγ"))
	if got := cursor.Peek(2); got != "αβ" {
		t.Errorf("Peek(2) = %q", got)
	}
	cursor.Advance(2)
	if cursor.Off != 4 || cursor.Column() != 2 {
		t.Errorf("expected off=4 col=2, got off=%d col=%d", cursor.Off, cursor.Column())
	}
	cursor.Advance(2)
	if cursor.Line() != 1 || cursor.Column() != 1 {
		t.Errorf("expected 1:1, got %d:%d", cursor.Line(), cursor.Column())
	}
}

// TestMarkReset проверяет работу Mark и Reset вместе с line/column
func TestMarkReset(t *testing.T) {
	cursor := NewCursor(createFile("ab\ncd"))
	mark := cursor.Mark()
	cursor.Advance(4)
	if cursor.Line() != 1 || cursor.Column() != 1 {
		t.Fatalf("expected 1:1, got %d:%d", cursor.Line(), cursor.Column())
	}
	if got := cursor.TextFrom(mark); got != "ab\nc" {
		t.Errorf("TextFrom = %q", got)
	}
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 4 {
		t.Errorf("SpanFrom = %v", span)
	}

	cursor.Reset(mark)
	if cursor.Off != 0 || cursor.Line() != 0 || cursor.Column() != 0 {
		t.Errorf("reset failed: off=%d %d:%d", cursor.Off, cursor.Line(), cursor.Column())
	}
}
