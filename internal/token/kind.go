package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Number is a run of ASCII digits.
	Number
	// String is a single-quoted string literal.
	String
	// Name is an identifier: [a-z][a-zA-Z0-9]*.
	Name
	// Operator covers arithmetic, logical, comparison and assignment operators.
	Operator
	// Keyword is the only keyword of the language: if.
	Keyword
	ParenStart     // (
	ParenEnd       // )
	CodeBlockStart // {
	CodeBlockEnd   // }
	Comma          // ,
	EndOfLine      // ;
	// Whitespace is a run of tab/CR/LF/space, dropped before parsing.
	Whitespace
)

var kindNames = [...]string{
	Invalid:        "invalid",
	EOF:            "EOF",
	Number:         "number",
	String:         "string",
	Name:           "name",
	Operator:       "operator",
	Keyword:        "keyword",
	ParenStart:     "parenStart",
	ParenEnd:       "parenEnd",
	CodeBlockStart: "codeBlockStart",
	CodeBlockEnd:   "codeBlockEnd",
	Comma:          "comma",
	EndOfLine:      "endOfLine",
	Whitespace:     "whitespace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsEOF reports whether the kind marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsTrivia reports whether the kind is dropped before parsing.
func (k Kind) IsTrivia() bool { return k == Whitespace }

// ParseKind converts a kind name back into a Kind.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return Invalid, false
}

// Describe returns a human-readable description of the kind, used in
// "expected ..." parts of syntax errors.
func (k Kind) Describe() string {
	switch k {
	case ParenStart:
		return "'('"
	case ParenEnd:
		return "')'"
	case CodeBlockStart:
		return "'{'"
	case CodeBlockEnd:
		return "'}'"
	case Comma:
		return "','"
	case EndOfLine:
		return "';'"
	case EOF:
		return "end of input"
	default:
		return k.String()
	}
}
