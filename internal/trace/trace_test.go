package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		l, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if !strings.EqualFold(l.String(), name) {
			t.Errorf("ParseLevel(%q) = %s", name, l)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := Start(ctx, ScopeDriver, "run")
	inner := func() {
		ctx, span := Start(ctx, ScopePass, "parse")
		Point(ctx, ScopeNode, "call", "print")
		span.End("")
	}
	inner()
	outer.End("")

	events := ring.Snapshot()
	if len(events) != 5 {
		t.Fatalf("got %d events, want 5", len(events))
	}
	if events[1].ParentID != events[0].SpanID {
		t.Errorf("parse parent = %d, want %d", events[1].ParentID, events[0].SpanID)
	}
	if events[2].Kind != KindPoint || events[2].ParentID != events[1].SpanID || events[2].Depth != 2 {
		t.Errorf("point event = %+v", events[2])
	}
	if events[4].Kind != KindSpanEnd || events[4].Name != "run" {
		t.Errorf("last event = %+v", events[4])
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for i := range 5 {
		ring.Emit(&Event{Kind: KindPoint, Scope: ScopeNode, Seq: uint64(i)})
	}
	got := ring.Snapshot()
	if len(got) != 3 || got[0].Seq != 2 || got[2].Seq != 4 {
		t.Fatalf("snapshot = %+v", got)
	}
}

func TestStreamTextFormat(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), st)
	_, span := Start(ctx, ScopePass, "lex")
	span.WithExtra("tokens", "4").WithExtra("file", "a.em").End("")
	Point(ctx, ScopeNode, "ignored", "")

	out := buf.String()
	if !strings.Contains(out, "→ lex") || !strings.Contains(out, "← lex") {
		t.Fatalf("missing span lines:\n%s", out)
	}
	if !strings.Contains(out, "{file=a.em, tokens=4}") {
		t.Errorf("extras not sorted:\n%s", out)
	}
	if strings.Contains(out, "ignored") {
		t.Errorf("node scope leaked at phase level:\n%s", out)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer is enabled")
	}
	if _, ok := Ring(tr); ok {
		t.Fatal("nop has no ring")
	}
}

func TestRingInsideMulti(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := Ring(tr); !ok {
		t.Fatal("ModeBoth should contain a ring")
	}
}
