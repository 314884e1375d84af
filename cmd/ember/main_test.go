package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	root, finish := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err = root.Execute()
	finish()
	return out.String(), errOut.String(), err
}

func writeScript(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScripts(t *testing.T) {
	tests := []struct {
		script string
		want   string
	}{
		{"precedence.em", "14 20 5 true\n"},
		{"branches.em", "result: 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			out, errOut, err := execute(t, "", "run", filepath.Join("..", "..", "testdata", "scripts", tt.script))
			if err != nil {
				t.Fatalf("run failed: %v\n%s", err, errOut)
			}
			if out != tt.want {
				t.Fatalf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestRunReportsDiagnostics(t *testing.T) {
	tests := []struct {
		script string
		want   []string
	}{
		{"undefined.em", []string{"undefined.em:2:11: error:", "[RUN3001]"}},
		{"invalid_char.em", []string{"invalid_char.em:2:15: error:", "[LEX1001]"}},
		{"unterminated_if.em", []string{"[SYN2002]"}},
		{"unterminated_string.em", []string{"[LEX1002]"}},
	}
	for _, tt := range tests {
		t.Run(tt.script, func(t *testing.T) {
			out, errOut, err := execute(t, "", "run", filepath.Join("..", "..", "testdata", "errors", tt.script))
			if !errors.Is(err, errReported) {
				t.Fatalf("err = %v, want errReported", err)
			}
			if out != "" {
				t.Fatalf("unexpected output %q", out)
			}
			for _, w := range tt.want {
				if !strings.Contains(errOut, w) {
					t.Fatalf("stderr %q does not contain %q", errOut, w)
				}
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	_, errOut, err := execute(t, "", "run", "no/such/file.em")
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.Contains(errOut, "[IO4001]") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestRunStdin(t *testing.T) {
	out, errOut, err := execute(t, "x = 2;\nprint(x * 21);", "run", "-")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, errOut)
	}
	if out != "42\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRunEagerLogicFlag(t *testing.T) {
	src := "ok = false && missing();"
	if _, errOut, err := execute(t, src, "run", "-"); err != nil {
		t.Fatalf("short-circuit run failed: %v\n%s", err, errOut)
	}
	_, errOut, err := execute(t, src, "run", "--eager-logic", "-")
	if !errors.Is(err, errReported) || !strings.Contains(errOut, "[RUN3002]") {
		t.Fatalf("eager run: err = %v, stderr = %q", err, errOut)
	}
}

func TestRunDirectory(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "a.em", "print('a');")
	writeScript(t, dir, "b.em", "print(nope);")

	out, errOut, err := execute(t, "", "run", "--ui", "off", "--jobs", "2", dir)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v, want errReported", err)
	}
	a := filepath.ToSlash(filepath.Join(dir, "a.em"))
	b := filepath.ToSlash(filepath.Join(dir, "b.em"))
	want := "==> " + a + " <==\na\n==> " + b + " <==\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
	if !strings.Contains(errOut, "[RUN3001]") || !strings.Contains(errOut, "2 scripts, 1 failed") {
		t.Fatalf("stderr = %q", errOut)
	}
}

func TestInitThenRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "app")
	out, _, err := execute(t, "", "init", dir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "ember.toml") || !strings.Contains(out, "main.em") {
		t.Fatalf("init output = %q", out)
	}
	if _, _, err := execute(t, "", "init", dir); err == nil {
		t.Fatal("second init should fail")
	}

	t.Chdir(dir)
	out, errOut, err := execute(t, "", "run")
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, errOut)
	}
	if out != "hello, app\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRunWithoutManifest(t *testing.T) {
	t.Chdir(t.TempDir())
	_, _, err := execute(t, "", "run")
	if err == nil || !strings.Contains(err.Error(), "no ember.toml found") {
		t.Fatalf("err = %v", err)
	}
}

func TestTokenizeJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "t.em", "x = 'hi';")
	out, _, err := execute(t, "", "tokenize", "--format", "json", path)
	if err != nil {
		t.Fatal(err)
	}
	var toks []struct {
		Kind string `json:"kind"`
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(out), &toks); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(toks) != 5 || toks[2].Text != "hi" || toks[4].Kind != "EOF" {
		t.Fatalf("tokens = %+v", toks)
	}
}

func TestTokenizeTrivia(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "t.em", "x = 1;")
	plain, _, err := execute(t, "", "tokenize", path)
	if err != nil {
		t.Fatal(err)
	}
	trivia, _, err := execute(t, "", "tokenize", "--trivia", path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.Count(plain, "\n"), 5; got != want {
		t.Fatalf("plain lines = %d, want %d\n%s", got, want, plain)
	}
	if got, want := strings.Count(trivia, "\n"), 7; got != want {
		t.Fatalf("trivia lines = %d, want %d\n%s", got, want, trivia)
	}
}

func TestParseTree(t *testing.T) {
	dir := t.TempDir()
	path := writeScript(t, dir, "p.em", "x = 1 + 2;")
	out, _, err := execute(t, "", "parse", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Program (1 statements)", "Assignment x (1:1)", "Binary + (1:5)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree %q does not contain %q", out, want)
		}
	}
	if _, _, err := execute(t, "", "parse", "--format", "yaml", path); err == nil {
		t.Fatal("unknown format accepted")
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "", "version", "--format", "json")
	if err != nil {
		t.Fatal(err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload["tool"] != "ember" || payload["version"] == "" {
		t.Fatalf("payload = %v", payload)
	}
}

func TestTraceToFile(t *testing.T) {
	tracePath := filepath.Join(t.TempDir(), "trace.log")
	if _, errOut, err := execute(t, "print(1);", "--trace", tracePath, "run", "-"); err != nil {
		t.Fatalf("run failed: %v\n%s", err, errOut)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "lex") || !strings.Contains(string(data), "run") {
		t.Fatalf("trace missing phases:\n%s", data)
	}
}

func TestDiagFormats(t *testing.T) {
	script := filepath.Join("..", "..", "testdata", "errors", "undefined.em")
	_, short, err := execute(t, "", "--diag-format", "short", "run", script)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !strings.HasPrefix(short, "error RUN3001 ") || !strings.Contains(short, "undefined.em:2:11 ") {
		t.Fatalf("short = %q", short)
	}

	_, js, err := execute(t, "", "--diag-format", "json", "run", script)
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !json.Valid([]byte(js)) || !strings.Contains(js, "RUN3001") {
		t.Fatalf("json = %q", js)
	}

	_, pretty, _ := execute(t, "", "--path-mode", "basename", "run", script)
	if !strings.HasPrefix(pretty, "undefined.em:2:11: error:") {
		t.Fatalf("pretty = %q", pretty)
	}

	if _, _, err := execute(t, "", "--diag-format", "xml", "run", script); err == nil {
		t.Fatal("unknown diag format accepted")
	}
}
