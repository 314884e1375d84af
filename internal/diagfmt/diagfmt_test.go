package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/lexer"
	"ember/internal/parser"
	"ember/internal/source"
)

func bagFor(t *testing.T, src string) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("main.em", []byte(src)))
	bag := diag.NewBag(10)
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err == nil {
		_, err = parser.Parse(toks)
	}
	if err == nil {
		t.Fatalf("%q parsed without errors", src)
	}
	bag.Add(diag.FromError(err))
	return bag, fs
}

func TestPrettyCaret(t *testing.T) {
	bag, fs := bagFor(t, "a = 1;\nx = 1 yy")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := "main.em:2:7: error: expected ';' or operator, found name \"yy\" [SYN2001]\n" +
		"1 | a = 1;\n" +
		"2 | x = 1 yy\n" +
		"  |       ^~\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	bag, fs := bagFor(t, "s = '日本' $")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	caret := lines[len(lines)-1]
	// '日本' занимает 6 ячеек, поэтому '$' стоит в ячейке 11
	if idx := strings.Index(caret, "^"); idx != len("  | ")+11 {
		t.Errorf("caret at %d in %q", idx, caret)
	}
	if !strings.HasPrefix(lines[0], "main.em:1:10: error: unexpected character '$'") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestPrettyEndOfInput(t *testing.T) {
	bag, fs := bagFor(t, "if (a) {")
	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	if !strings.HasSuffix(buf.String(), "  |         ^\n") {
		t.Errorf("got:\n%s", buf.String())
	}
}

func TestPrettyNotesAndColor(t *testing.T) {
	bag, fs := bagFor(t, "x = 'open")
	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{ShowNotes: true})
	Pretty(&colored, bag, fs, PrettyOpts{ShowNotes: true, Color: true})
	if !strings.Contains(plain.String(), "note: string starts here") {
		t.Errorf("note missing:\n%s", plain.String())
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Error("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Error("colored output has no escape codes")
	}
}

func TestPrettyNoLocation(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(diag.NewGlobal(diag.IOLoadFileError, "open x.em: no such file"))
	var buf bytes.Buffer
	Pretty(&buf, bag, source.NewFileSet(), PrettyOpts{})
	if buf.String() != "error: open x.em: no such file [IO4001]\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	bag, fs := bagFor(t, "x = 'open")
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 1 || out.Diagnostics[0].Code != "LEX1002" {
		t.Fatalf("out = %+v", out)
	}
	loc := out.Diagnostics[0].Location
	if loc == nil || loc.StartLine != 1 || loc.StartCol != 5 || loc.File != "main.em" {
		t.Errorf("location = %+v", loc)
	}
	if len(out.Diagnostics[0].Notes) != 1 {
		t.Errorf("notes = %+v", out.Diagnostics[0].Notes)
	}
}

func TestTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.em", []byte("x = 'a';")))
	toks, err := lexer.Tokenize(file, lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if lines[2] != `  3: string          "a" at 1:5-1:8` {
		t.Errorf("line 3 = %q", lines[2])
	}
	if !strings.HasPrefix(lines[4], "  5: EOF             at 1:9") {
		t.Errorf("line 5 = %q", lines[4])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, toks); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out[2].Kind != "string" || out[2].Start != 4 || out[2].End != 7 {
		t.Errorf("token 3 = %+v", out[2])
	}
}

func TestASTPretty(t *testing.T) {
	toks, err := lexer.TokenizeString("x = 2 + 3 * 4;\nif (x > 1) { print('big'); } else { y = -x; }")
	if err != nil {
		t.Fatal(err)
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, stmts); err != nil {
		t.Fatal(err)
	}
	want := `Program (2 statements)
├─ Assignment x (1:1)
│  └─ Binary + (1:5)
│     ├─ NumberLiteral 2 (1:5)
│     └─ Binary * (1:9)
│        ├─ NumberLiteral 3 (1:9)
│        └─ NumberLiteral 4 (1:13)
└─ If (2:1)
   ├─ condition: Binary > (2:5)
   │  ├─ VariableRef x (2:5)
   │  └─ NumberLiteral 1 (2:9)
   ├─ body: FunctionCall print (2:14)
   │  └─ StringLiteral 'big' (2:20)
   └─ else: Assignment y (2:37)
      └─ Unary - (2:41)
         └─ VariableRef x (2:42)
`
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestASTJSON(t *testing.T) {
	toks, err := lexer.TokenizeString("f(1, a);")
	if err != nil {
		t.Fatal(err)
	}
	stmts, err := parser.Parse(toks)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, stmts); err != nil {
		t.Fatal(err)
	}
	var out struct {
		Statements []ASTNodeOutput `json:"statements"`
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	call := out.Statements[0]
	if call.Type != "FunctionCall" || call.Fields["name"] != "f" || len(call.Children["arguments"]) != 2 {
		t.Fatalf("call = %+v", call)
	}
	if call.Children["arguments"][1].Type != "VariableRef" {
		t.Errorf("second argument = %+v", call.Children["arguments"][1])
	}
}
