package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002

	SynUnexpectedToken Code = 2001
	SynUnexpectedEOF   Code = 2002

	RunUndefinedVariable Code = 3001
	RunUndefinedFunction Code = 3002
	RunTypeMismatch      Code = 3003
	RunDivisionByZero    Code = 3004
	RunHostFailure       Code = 3005
	RunInvalidNode       Code = 3006

	IOLoadFileError Code = 4001

	ProjManifestError Code = 5001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	SynUnexpectedToken:    "Unexpected token",
	SynUnexpectedEOF:      "Unexpected end of input",
	RunUndefinedVariable:  "Undefined variable",
	RunUndefinedFunction:  "Undefined function",
	RunTypeMismatch:       "Operand type mismatch",
	RunDivisionByZero:     "Division by zero",
	RunHostFailure:        "Host function failed",
	RunInvalidNode:        "Invalid syntax tree",
	IOLoadFileError:       "I/O load file error",
	ProjManifestError:     "Invalid project manifest",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RUN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
