package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"ember/internal/driver"
	"ember/internal/source"
	"ember/internal/ui"
)

type dirOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runDirWithUI runs the scripts under dir while a progress view listens to
// the pipeline events. files must match what driver.ListScripts returns.
// Quitting the view cancels the run, so workers blocked on a full event
// channel give up instead of waiting for a reader that is gone.
func runDirWithUI(ctx context.Context, w io.Writer, dir string, files []string, opts driver.Options) (*source.FileSet, []driver.FileResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		runOpts := opts
		runOpts.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.RunDir(ctx, dir, runOpts)
		outcomeCh <- dirOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("running "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(w))
	_, uiErr := program.Run()
	cancel()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
