package diag

import (
	"errors"
	"io/fs"
	"strconv"

	"ember/internal/interp"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/project"
	"ember/internal/source"
	"ember/internal/token"
)

// FromError converts a pipeline error into a diagnostic. Errors it does not
// recognise become UnknownCode diagnostics without a location.
func FromError(err error) Diagnostic {
	var (
		lexErr  *lexer.LexError
		synErr  *parser.SyntaxError
		undefV  *interp.UndefinedVariableError
		undefF  *interp.UndefinedFunctionError
		typeErr *interp.TypeError
		divErr  *interp.DivisionByZeroError
		hostErr *interp.HostError
		nodeErr *interp.InvalidNodeError
		manErr  *project.ManifestError
		pathErr *fs.PathError
	)
	switch {
	case errors.As(err, &lexErr):
		if lexErr.Kind == lexer.ErrUnterminatedString {
			return NewError(LexUnterminatedString, lexErr.Span, "unterminated string literal").
				WithNote(source.Span{File: lexErr.Span.File, Start: lexErr.Span.Start, End: lexErr.Span.Start + 1}, "string starts here")
		}
		return NewError(LexUnknownChar, lexErr.Span, "unexpected character "+strconv.QuoteRune(lexErr.Char))
	case errors.As(err, &synErr):
		code := SynUnexpectedToken
		if synErr.Found.Kind == token.EOF {
			code = SynUnexpectedEOF
		}
		return NewError(code, synErr.Span, "expected "+synErr.ExpectedString()+", found "+synErr.Found.Describe())
	case errors.As(err, &hostErr):
		// host errors may wrap other runtime errors; the call site is what matters
		return NewError(RunHostFailure, hostErr.At.Span, hostErr.Name+": "+hostErr.Err.Error())
	case errors.As(err, &undefV):
		return NewError(RunUndefinedVariable, undefV.At.Span, "undefined variable '"+undefV.Name+"'")
	case errors.As(err, &undefF):
		return NewError(RunUndefinedFunction, undefF.At.Span, "undefined function '"+undefF.Name+"'")
	case errors.As(err, &typeErr):
		return NewError(RunTypeMismatch, typeErr.At.Span, typeErr.Detail())
	case errors.As(err, &divErr):
		return NewError(RunDivisionByZero, divErr.At.Span, "division by zero")
	case errors.As(err, &nodeErr):
		return NewError(RunInvalidNode, nodeErr.At.Span, nodeErr.Detail())
	case errors.As(err, &manErr):
		return NewGlobal(ProjManifestError, manErr.Error())
	case errors.As(err, &pathErr):
		return NewGlobal(IOLoadFileError, err.Error())
	}
	return NewGlobal(UnknownCode, err.Error())
}
