package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"ember/internal/source"
	"ember/internal/token"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Text   string `json:"text,omitempty"`
	Start  uint32 `json:"start"`
	End    uint32 `json:"end"`
	Line   uint32 `json:"line"`
	Column uint32 `json:"column"`
}

// FormatTokensPretty prints one token per line with its 1-based position.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		line := fmt.Sprintf("%3d: %-15s", i+1, tok.Kind)
		if tok.Kind != token.EOF {
			line += fmt.Sprintf(" %q", tok.Text)
		}
		line += " at " + tok.Pos.String()
		if fs != nil && int(tok.Span.File) < fs.Len() {
			_, end := fs.ResolveRunes(tok.Span)
			line += fmt.Sprintf("-%d:%d", end.Line, end.Col)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON writes the tokens as a JSON array. Positions are 0-based.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:   tok.Kind.String(),
			Text:   tok.Text,
			Start:  tok.Span.Start,
			End:    tok.Span.End,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
