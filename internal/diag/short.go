package diag

import (
	"fmt"
	"path/filepath"
	"strings"

	"ember/internal/source"
)

// FormatShort renders one line per diagnostic and note:
//
//	error SYN2001 main.em:1:7 expected ';' or operator, found name "y"
//
// Paths are relative to the file set's base directory and columns count
// runes. Diagnostics are printed in the given order.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	var b strings.Builder
	for _, d := range diags {
		writeShort(&b, d.Severity.Label(), d.Code, d.Primary, d.NoLocation, d.Message, fs)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			writeShort(&b, "note", d.Code, n.Span, d.NoLocation, n.Msg, fs)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeShort(b *strings.Builder, label string, code Code, span source.Span, noLoc bool, msg string, fs *source.FileSet) {
	fmt.Fprintf(b, "%s %s ", label, code.ID())
	if loc, ok := resolve(fs, span); ok && !noLoc {
		fmt.Fprintf(b, "%s:%d:%d ", loc.path, loc.line, loc.col)
	}
	b.WriteString(sanitize(msg))
	b.WriteByte('\n')
}

type location struct {
	path      string
	line, col uint32
}

func resolve(fs *source.FileSet, span source.Span) (location, bool) {
	if fs == nil || int(span.File) >= fs.Len() {
		return location{}, false
	}
	file := fs.Get(span.File)
	start, _ := fs.ResolveRunes(span)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	return location{path: strings.TrimPrefix(path, "./"), line: start.Line, col: start.Col}, true
}

func sanitize(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
