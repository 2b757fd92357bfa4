package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sealscan/internal/driver"
	"sealscan/internal/ui"
)

type scanOutcome struct {
	result *driver.Result
	err    error
}

// runScanWithUI runs driver.Scan in the background while a progress view
// renders its events on stderr.
func runScanWithUI(ctx context.Context, title, target string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Scan(ctx, target, optsCopy)
		outcomeCh <- scanOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the scan from blocking on a full channel
		for range events {
		}
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
