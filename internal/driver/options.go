package driver

import (
	"context"
	"io"

	"ember/internal/observ"
)

// Options configure one pipeline invocation.
type Options struct {
	// MaxDiagnostics caps each file's bag; 0 means unlimited.
	MaxDiagnostics int
	// KeepWhitespace keeps whitespace tokens in Tokenize results. Parse and
	// Run always drop them.
	KeepWhitespace bool
	EagerLogic     bool
	// Vars are preset variables as decoded from ember.toml [vars].
	Vars map[string]any
	// Out receives print output. Nil means stdout.
	Out io.Writer

	Cache    *TokenCache
	Timer    *observ.Timer
	Progress ProgressSink
	// Jobs bounds RunDir parallelism; 0 means GOMAXPROCS.
	Jobs int
}

// track starts a timer phase when a timer is configured.
func (o *Options) track(name string) func(note string) {
	if o.Timer == nil {
		return func(string) {}
	}
	return o.Timer.Track(name)
}

func (o *Options) emit(ctx context.Context, ev Event) {
	switch sink := o.Progress.(type) {
	case nil:
	case ContextSink:
		sink.OnEventContext(ctx, ev)
	default:
		sink.OnEvent(ev)
	}
}
