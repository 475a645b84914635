package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"jsrb/internal/driver"
	"jsrb/internal/pipeline"
	"jsrb/internal/ui"
)

type dirOutcome struct {
	results []driver.Result
	summary driver.DirSummary
	err     error
}

// runTranslateDirWithUI runs a directory translation behind a Bubble Tea
// progress screen. Events stream from the worker goroutine into the model;
// the translation outcome is collected once the channel closes.
func runTranslateDirWithUI(ctx context.Context, tr *driver.Translator, dir string, opts driver.DirOptions) ([]driver.Result, driver.DirSummary, error) {
	files, err := driver.ListASTFiles(dir)
	if err != nil {
		return nil, driver.DirSummary{}, err
	}
	display := make([]string, len(files))
	for i, f := range files {
		display[i] = driver.DisplayPath(f, dir)
	}

	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		results, summary, err := tr.TranslateDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{results: results, summary: summary, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("translating "+dir, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, outcome.summary, uiErr
	}
	return outcome.results, outcome.summary, outcome.err
}
