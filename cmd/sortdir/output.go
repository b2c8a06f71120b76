package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"sortdir/internal/dirlock"
	"sortdir/internal/organizer"
)

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiRed    = "\033[31m"
	ansiBlue   = "\033[34m"
	ansiDim    = "\033[2m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(enabled bool, color, text string) string {
	if !enabled {
		return text
	}
	return color + text + ansiReset
}

// progressPrinter writes one line per organizer event.
func progressPrinter(out io.Writer) organizer.ProgressFunc {
	color := shouldColorize(out)
	return func(evt organizer.Event) {
		if evt.Err != nil {
			fmt.Fprintf(out, "%s %s\n", evt.Message, colorize(color, ansiRed, "(failed: "+evt.Err.Error()+")"))
			return
		}
		fmt.Fprintln(out, evt.Message)
	}
}

// describeRunError maps fatal run errors to the message shown to the user.
func describeRunError(err error, dir string) error {
	switch {
	case errors.Is(err, organizer.ErrNotADirectory):
		return fmt.Errorf("%s is not an existing directory: %w", dir, err)
	case errors.Is(err, dirlock.ErrBusy):
		return fmt.Errorf("%s is already being organized by another sortdir process: %w", dir, err)
	default:
		return fmt.Errorf("an unexpected error occurred: %w", err)
	}
}
