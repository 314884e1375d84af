package diag

import "ember/internal/source"

type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	// NoLocation marks diagnostics without a source position (I/O, manifest).
	NoLocation bool
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}

// NewGlobal builds an error diagnostic that points at no source.
func NewGlobal(code Code, msg string) Diagnostic {
	return Diagnostic{Severity: SevError, Code: code, Message: msg, NoLocation: true}
}
