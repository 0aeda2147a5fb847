package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"c0c/internal/buildpipeline"
	"c0c/internal/driver"
	"c0c/internal/ui"
)

type buildOutcome struct {
	result *driver.BatchResult
	err    error
}

// runBuildWithUI compiles paths while a Bubble Tea model renders progress.
// Closing the UI early does not stop the build.
func runBuildWithUI(ctx context.Context, title string, display, paths []string, opts driver.BatchOptions) (*driver.BatchResult, error) {
	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.CompileFiles(ctx, paths, optsCopy)
		outcomeCh <- buildOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, display, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()

	// после выхода из UI продолжаем вычитывать события, иначе сборка встанет
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
