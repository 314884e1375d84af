package driver

import (
	"context"
	"time"
)

// Stage names a pipeline step in progress events.
type Stage string

const (
	StageLex   Stage = "lex"
	StageParse Stage = "parse"
	StageRun   Stage = "run"
)

// Status is the state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress of one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives progress events. Implementations must be safe for
// concurrent use; RunDir emits from several workers.
type ProgressSink interface {
	OnEvent(Event)
}

// ContextSink is a ProgressSink whose delivery can block. The pipeline
// calls OnEventContext instead of OnEvent and expects it to give up once
// ctx is done.
type ContextSink interface {
	ProgressSink
	OnEventContext(ctx context.Context, ev Event)
}

// ChannelSink forwards events into a channel. A send that nobody receives
// is dropped when the context of the run ends.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) { s.OnEventContext(context.Background(), ev) }

func (s ChannelSink) OnEventContext(ctx context.Context, ev Event) {
	if s.Ch == nil {
		return
	}
	// отменённый контекст не должен ждать читателя
	if ctx.Err() != nil {
		return
	}
	select {
	case s.Ch <- ev:
	case <-ctx.Done():
	}
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }
