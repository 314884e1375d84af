package main

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"testing"

	"ember/internal/driver"
)

func newTestSession(t *testing.T) (*session, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	s, err := newSession(globalOptions{maxDiagnostics: 10, diagFormat: "pretty"}, driver.Options{MaxDiagnostics: 10}, &out, &errOut)
	if err != nil {
		t.Fatal(err)
	}
	return s, &out, &errOut
}

func TestSessionReady(t *testing.T) {
	s, _, _ := newTestSession(t)
	tests := []struct {
		src  string
		want bool
	}{
		{"x = 1", true},
		{"x = 1;", true},
		{"1 + 2", true},
		{"1 +", false},
		{"x =", false},
		{"print(", false},
		{"if (x) {", false},
		{"if (x) {\n  y = 1;\n}", true},
		{"'open", false},
		{"x = 1 $", true},
		{"x = 1 2", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := s.ready(tt.src); got != tt.want {
				t.Fatalf("ready(%q) = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestSessionKeepsState(t *testing.T) {
	s, out, errOut := newTestSession(t)
	ctx := context.Background()
	for _, src := range []string{"x = 2", "x * 3", "print('x is', x);", "'a' + x"} {
		s.eval(ctx, src)
	}
	if want := "2\n6\nx is 2\n'a2'\n"; out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
	if errOut.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %s", errOut.String())
	}
}

func TestSessionDiagnosticsNameTheInput(t *testing.T) {
	s, out, errOut := newTestSession(t)
	ctx := context.Background()
	s.eval(ctx, "x = 1")
	s.eval(ctx, "x + y")
	if out.String() != "1\n" {
		t.Fatalf("output = %q", out.String())
	}
	got := errOut.String()
	if !strings.Contains(got, "<repl:2>:1:5: error:") || !strings.Contains(got, "[RUN3001]") {
		t.Fatalf("diagnostics = %q", got)
	}

	errOut.Reset()
	s.eval(ctx, "x = (1")
	if !strings.Contains(errOut.String(), "[SYN2002]") {
		t.Fatalf("diagnostics = %q", errOut.String())
	}
}

func TestSessionCommands(t *testing.T) {
	s, out, errOut := newTestSession(t)
	s.eval(context.Background(), "greeting = 'hi'")
	out.Reset()

	if s.command(":vars") {
		t.Fatal(":vars should not quit")
	}
	if want := "false = false\ngreeting = 'hi'\ntrue = true\n"; out.String() != want {
		t.Fatalf(":vars = %q, want %q", out.String(), want)
	}

	out.Reset()
	s.command(":funcs")
	if !strings.Contains(out.String(), "print") || !strings.Contains(out.String(), "upper") {
		t.Fatalf(":funcs = %q", out.String())
	}

	s.command(":reset")
	if _, ok := s.m.Vars.Get("greeting"); ok {
		t.Fatal(":reset kept greeting")
	}

	s.command(":nope")
	if !strings.Contains(errOut.String(), "unknown command :nope") {
		t.Fatalf("stderr = %q", errOut.String())
	}
	if !s.command(":quit") {
		t.Fatal(":quit should quit")
	}
}

func TestSessionCompletions(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.eval(context.Background(), "power = 1")

	got := s.completions("x = po")
	if !slices.Equal(got, []string{"x = pow", "x = power"}) {
		t.Fatalf("completions = %q", got)
	}
	if got := s.completions(":v"); !slices.Equal(got, []string{":vars"}) {
		t.Fatalf("command completions = %q", got)
	}
	if got := s.completions("x = "); got != nil {
		t.Fatalf("empty prefix completions = %q", got)
	}
}
