package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"sortdir/internal/organizer"
	"sortdir/internal/runexec"
)

// RunFunc executes one organize run. runexec.Run satisfies it.
type RunFunc func(context.Context, runexec.Options) (runexec.Outcome, error)

type progressMsg struct {
	evt organizer.Event
}

type runFinishedMsg struct {
	out runexec.Outcome
	err error
}

// startRun executes the run on the command goroutine. Progress events and the
// final result travel over events, which is closed once the run returns.
func startRun(ctx context.Context, run RunFunc, opts runexec.Options, events chan<- tea.Msg) tea.Cmd {
	return func() tea.Msg {
		defer close(events)
		opts.Progress = func(evt organizer.Event) {
			events <- progressMsg{evt: evt}
		}
		out, err := run(ctx, opts)
		events <- runFinishedMsg{out: out, err: err}
		return nil
	}
}

// waitForEvent delivers the next worker message to Update.
func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}
