package comb

import (
	"math/rand"
	"testing"

	"ember/internal/lexer"
	"ember/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	toks, err := lexer.TokenizeString(src)
	if err != nil {
		t.Fatalf("tokenize %q: %v", src, err)
	}
	return toks
}

func TestCursorBasics(t *testing.T) {
	c := NewCursor(lex(t, "a = 1;"))
	if !c.HasMore() {
		t.Fatal("expected tokens")
	}
	var texts []string
	for c.HasMore() {
		tok, ok := c.Current()
		if !ok {
			t.Fatal("Current reported end while HasMore")
		}
		texts = append(texts, tok.Text)
		c.Advance()
	}
	if len(texts) != 4 {
		t.Fatalf("expected 4 tokens without EOF, got %v", texts)
	}
	tok, ok := c.Current()
	if ok || tok.Kind != token.EOF {
		t.Errorf("expected EOF at end, got %v %v", tok.Kind, ok)
	}
	if tok.Pos.Column != 6 {
		t.Errorf("EOF column = %d, want 6", tok.Pos.Column)
	}
	c.Advance() // no-op at end
	if c.Pos() != 4 {
		t.Errorf("Advance past end moved the cursor to %d", c.Pos())
	}
}

func TestCursorWithoutEOFToken(t *testing.T) {
	toks := lex(t, "abc")
	c := NewCursor(toks[:1])
	c.Advance()
	eof := c.EOF()
	if eof.Kind != token.EOF || eof.Pos.Column != 3 || eof.Pos.Offset != 3 {
		t.Errorf("synthesized EOF = %+v", eof)
	}
	tests := []struct {
		src    string
		offset uint32
		col    uint32
	}{
		{"s = 'é日'", 11, 8},
		{"s = 'a\\'b'", 10, 10},
	}
	for _, tt := range tests {
		toks := lex(t, tt.src)
		eof := NewCursor(toks[:len(toks)-1]).EOF()
		if eof.Pos.Offset != tt.offset || eof.Pos.Column != tt.col {
			t.Errorf("%s: synthesized EOF at offset %d col %d, want %d col %d", tt.src, eof.Pos.Offset, eof.Pos.Column, tt.offset, tt.col)
		}
	}
	if empty := NewCursor(nil); empty.HasMore() {
		t.Error("empty cursor has tokens")
	}
}

func TestNestedSaveRestore(t *testing.T) {
	c := NewCursor(lex(t, "a b c d e"))
	c.Save() // outer at 0
	c.Advance()
	c.Save() // inner at 1
	c.Advance()
	c.Advance()
	c.Restore() // back to 1
	if c.Pos() != 1 {
		t.Fatalf("inner restore: pos=%d, want 1", c.Pos())
	}
	c.Save() // inner again at 1
	c.Advance()
	c.Discard() // keep 2
	if c.Pos() != 2 || c.Depth() != 1 {
		t.Fatalf("discard: pos=%d depth=%d", c.Pos(), c.Depth())
	}
	c.Restore() // outer
	if c.Pos() != 0 || c.Depth() != 0 {
		t.Fatalf("outer restore: pos=%d depth=%d", c.Pos(), c.Depth())
	}
}

// Any LIFO sequence of saves followed by restores/discards unwinds to the
// outermost saved position.
func TestSaveRestoreIsStack(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	toks := lex(t, "a b c d e f g h i j k l m n o p")
	for iter := 0; iter < 200; iter++ {
		c := NewCursor(toks)
		for i := rng.Intn(4); i > 0; i-- {
			c.Advance()
		}
		outer := c.Pos()
		c.Save()
		depth := 1
		for step := 0; step < 30; step++ {
			switch rng.Intn(4) {
			case 0:
				c.Save()
				depth++
			case 1:
				c.Advance()
			case 2:
				if depth > 1 {
					c.Restore()
					depth--
				}
			case 3:
				if depth > 1 {
					c.Discard()
					depth--
				}
			}
		}
		for depth > 1 {
			if rng.Intn(2) == 0 {
				c.Restore()
			} else {
				c.Discard()
			}
			depth--
		}
		c.Restore()
		if c.Pos() != outer || c.Depth() != 0 {
			t.Fatalf("iteration %d: pos=%d depth=%d, want pos=%d depth=0", iter, c.Pos(), c.Depth(), outer)
		}
	}
}

func TestRestoreWithoutSavePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewCursor(nil).Restore()
}
