package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ember/internal/diag"
	"ember/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret, path *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue, color.Bold),
		code:   mk(color.Faint),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		path:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty renders the diagnostics of bag in a compiler-like layout:
//
//	main.em:1:7: error SYN2001: expected ';' or operator, found name "y"
//	  1 | x = 1 y
//	    |       ^
//
// Call bag.Sort() first for a stable order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
	if n := bag.Dropped(); n > 0 {
		fmt.Fprintf(w, "\n%s\n", p.code.Sprintf("... and %d more", n))
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	header := fmt.Sprintf("%s: %s",
		p.severity(d.Severity).Sprint(d.Severity.Label()),
		p.path.Sprint(d.Message))
	code := p.code.Sprintf("[%s]", d.Code.ID())

	if d.NoLocation || fs == nil || int(d.Primary.File) >= fs.Len() {
		fmt.Fprintf(w, "%s %s\n", header, code)
		return
	}
	f := fs.Get(d.Primary.File)
	start, end := fs.ResolveRunes(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s\n", p.path.Sprint(formatPath(f, fs, opts.PathMode)), start.Line, start.Col, header, code)
	snippet(w, f, start, end, opts.Context, p, p.caret)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		ns, ne := fs.ResolveRunes(n.Span)
		fmt.Fprintf(w, "%s %s\n", p.note.Sprint("note:"), n.Msg)
		snippet(w, fs.Get(n.Span.File), ns, ne, 0, p, p.note)
	}
}

// snippet prints the first line of span with a caret underline. Wide runes
// take two cells, so the underline is measured with runewidth.
func snippet(w io.Writer, f *source.File, start, end source.LineCol, context int, p palette, caret *color.Color) {
	gutterWidth := len(fmt.Sprint(start.Line))
	for ln := max(1, int(start.Line)-context); ln < int(start.Line); ln++ {
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), f.GetLine(uint32(ln))) //nolint:gosec // ln > 0
	}

	line := f.GetLine(start.Line)
	fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, start.Line), line)

	runes := []rune(line)
	from := min(int(start.Col)-1, len(runes))
	to := len(runes)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(runes))
	}
	pad := runewidth.StringWidth(string(runes[:from]))
	width := runewidth.StringWidth(string(runes[from:to]))
	if width == 0 {
		width = 1 // пустой span (конец ввода) всё равно отмечаем
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), caret.Sprint(marker))
}
