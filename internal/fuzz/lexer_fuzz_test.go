package fuzztests

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"ember/internal/lexer"
	"ember/internal/source"
	"ember/internal/token"
)

func lex(input []byte, keep bool) ([]token.Token, error) {
	fs := source.NewFileSet()
	return lexer.Tokenize(fs.Get(fs.AddVirtual("fuzz.em", input)), lexer.Options{KeepWhitespace: keep})
}

// naivePosition counts lines and runes over input[:off].
func naivePosition(input []byte, off int) (line, col uint32) {
	for _, r := range string(input[:off]) {
		if r == '\n' {
			line++
			col = 0
			continue
		}
		col++
	}
	return line, col
}

func FuzzLexerSpansTile(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)
		if !utf8.Valid(input) {
			return
		}
		toks, err := lex(input, true)
		if err != nil {
			var le *lexer.LexError
			if !errors.As(err, &le) {
				t.Fatalf("error %T is not a LexError: %v", err, err)
			}
			line, col := naivePosition(input, int(le.Pos.Offset))
			if le.Pos.Line != line || le.Pos.Column != col {
				t.Fatalf("error at %d:%d, naive %d:%d (offset %d)", le.Pos.Line, le.Pos.Column, line, col, le.Pos.Offset)
			}
			return
		}

		var sb strings.Builder
		for _, tok := range toks {
			line, col := naivePosition(input, int(tok.Pos.Offset))
			if tok.Pos.Line != line || tok.Pos.Column != col {
				t.Fatalf("%s at %d:%d, naive %d:%d", tok.Describe(), tok.Pos.Line, tok.Pos.Column, line, col)
			}
			sb.Write(input[tok.Span.Start:tok.Span.End])
		}
		if sb.String() != string(input) {
			t.Fatalf("spans do not tile the input:\n got %q\nwant %q", sb.String(), input)
		}
	})
}

func FuzzLexerRelexIdempotent(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clamp(input, maxFuzzInput)
		toks, err := lex(input, false)
		if err != nil {
			return
		}
		parts := make([]string, 0, len(toks))
		for _, tok := range toks[:len(toks)-1] {
			parts = append(parts, string(input[tok.Span.Start:tok.Span.End]))
		}
		again, err := lex([]byte(strings.Join(parts, " ")), false)
		if err != nil {
			t.Fatalf("re-lex failed: %v", err)
		}
		if len(again) != len(toks) {
			t.Fatalf("re-lex produced %d tokens, want %d", len(again), len(toks))
		}
		for i := range toks {
			if again[i].Kind != toks[i].Kind || again[i].Text != toks[i].Text {
				t.Fatalf("token %d: %s, want %s", i, again[i].Describe(), toks[i].Describe())
			}
		}
	})
}

// FuzzLexerInjectedCharPosition inserts '$' (never valid outside a string)
// and checks the reported position against a naive count.
func FuzzLexerInjectedCharPosition(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s), uint16(len(s)/2))
	}
	f.Fuzz(func(t *testing.T, input []byte, at uint16) {
		input = clamp(input, maxFuzzInput)
		if !utf8.Valid(input) {
			return
		}
		toks, err := lex(input, false)
		if err != nil {
			return
		}
		off := int(at) % (len(input) + 1)
		for off > 0 && off < len(input) && !utf8.RuneStart(input[off]) {
			off--
		}
		for _, tok := range toks {
			// внутри строки '$' обычный символ, а после '\' ещё и меняет разбор
			if tok.Kind == token.String && int(tok.Span.Start) < off && off < int(tok.Span.End) {
				return
			}
		}
		mutated := make([]byte, 0, len(input)+1)
		mutated = append(mutated, input[:off]...)
		mutated = append(mutated, '$')
		mutated = append(mutated, input[off:]...)

		_, err = lex(mutated, false)
		var le *lexer.LexError
		if !errors.As(err, &le) || le.Kind != lexer.ErrInvalidChar {
			t.Fatalf("unexpected error %v for %q", err, truncateForLog(mutated, 200))
		}
		if int(le.Pos.Offset) != off || le.Char != '$' {
			t.Fatalf("error at offset %d (%q), injected at %d", le.Pos.Offset, le.Char, off)
		}
		line, col := naivePosition(mutated, off)
		if le.Pos.Line != line || le.Pos.Column != col {
			t.Fatalf("error at %d:%d, naive %d:%d", le.Pos.Line, le.Pos.Column, line, col)
		}
	})
}
