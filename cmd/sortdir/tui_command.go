package main

import (
	"strings"

	"github.com/spf13/cobra"

	"sortdir/internal/config"
	"sortdir/internal/tui"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [dir]",
		Short: "Open the interactive organizer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var dir string
			if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
				if dir, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			// The screen belongs to the TUI; logs only go to the file.
			logger, err := ctx.newLogger(nil)
			if err != nil {
				return err
			}
			store := ctx.openHistory(logger, false)
			if store != nil {
				defer store.Close()
			}

			return tui.Run(cmd.Context(), tui.Options{
				Config: cfg,
				Logger: logger,
				Store:  store,
				Dir:    dir,
			})
		},
	}
}
