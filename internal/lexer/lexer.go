package lexer

import (
	"ember/internal/source"
	"ember/internal/token"
)

// recognizer either consumes a token and reports ok, or leaves the cursor
// untouched. An error is fatal for the whole tokenization.
type recognizer func(lx *Lexer) (token.Kind, string, bool, error)

func infallible(scan func(*Lexer) (token.Kind, string, bool)) recognizer {
	return func(lx *Lexer) (token.Kind, string, bool, error) {
		kind, text, ok := scan(lx)
		return kind, text, ok, nil
	}
}

// Порядок важен: первый сработавший распознаватель выигрывает.
var recognizers = [...]recognizer{
	infallible((*Lexer).scanNumber),
	(*Lexer).scanString,
	infallible((*Lexer).scanOperator),
	infallible((*Lexer).scanKeyword),
	infallible((*Lexer).scanName),
	infallible((*Lexer).scanPunct),
	infallible((*Lexer).scanWhitespace),
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token, whitespace included. After the end of input
// it keeps returning EOF.
func (lx *Lexer) Next() (token.Token, error) {
	pos := lx.cursor.Pos()
	start := lx.cursor.Mark()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(start), Pos: pos}, nil
	}

	for _, recognize := range recognizers {
		kind, text, ok, err := recognize(lx)
		if err != nil {
			return token.Token{}, err
		}
		if !ok {
			lx.cursor.Reset(start)
			continue
		}
		return token.Token{
			Kind: kind,
			Text: text,
			Span: lx.cursor.SpanFrom(start),
			Pos:  pos,
		}, nil
	}

	ch, size := lx.cursor.PeekRune()
	return token.Token{}, &LexError{
		Kind: ErrInvalidChar,
		Pos:  pos,
		Span: source.Span{File: lx.file.ID, Start: pos.Offset, End: pos.Offset + uint32(size)},
		Char: ch,
	}
}

// Tokenize lexes the whole file. Whitespace is dropped unless
// opts.KeepWhitespace is set; the result always ends with one EOF token.
func Tokenize(file *source.File, opts Options) ([]token.Token, error) {
	lx := New(file, opts)
	tokens := make([]token.Token, 0, len(file.Content)/3+1)
	for {
		tok, err := lx.Next()
		if err != nil {
			return nil, err
		}
		if tok.Kind.IsTrivia() && !opts.KeepWhitespace {
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// TokenizeString lexes src as a virtual file.
func TokenizeString(src string) ([]token.Token, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("<input>", []byte(src))
	return Tokenize(fs.Get(id), Options{})
}
