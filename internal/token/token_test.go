package token

import "testing"

func TestKindStringRoundTrip(t *testing.T) {
	for k := Invalid; k <= Whitespace; k++ {
		got, ok := ParseKind(k.String())
		if !ok || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParseKind("nope"); ok {
		t.Error("expected unknown kind to fail")
	}
	if Kind(200).String() != "unknown" {
		t.Error("expected unknown for out of range kind")
	}
}

func TestTokenIs(t *testing.T) {
	tok := Token{Kind: Operator, Text: "=="}
	if !tok.Is(Operator, "") || !tok.Is(Operator, "==") {
		t.Error("expected operator match")
	}
	if tok.Is(Operator, "=") || tok.Is(Name, "") {
		t.Error("unexpected match")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Name, Text: "age"}, `name "age"`},
		{Token{Kind: String, Text: "hi"}, "string 'hi'"},
		{Token{Kind: CodeBlockEnd}, "'}'"},
		{Token{Kind: EOF}, "end of input"},
	}
	for _, tt := range tests {
		if got := tt.tok.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
	if (Position{Line: 0, Column: 4}).String() != "1:5" {
		t.Error("position should render 1-based")
	}
}
