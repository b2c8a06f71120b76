package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sortdir/internal/config"
	"sortdir/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check [dir]",
		Short: "Verify a directory can be organized and the state directory is usable",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			var target string
			if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
				if target, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			results := preflight.RunAll(cfg, target)
			for _, r := range results {
				status := colorize(color, ansiGreen, "OK  ")
				switch {
				case !r.Passed && r.Optional:
					status = colorize(color, ansiYellow, "WARN")
				case !r.Passed:
					status = colorize(color, ansiRed, "FAIL")
				}
				fmt.Fprintf(out, "%s %s: %s\n", status, r.Name, r.Detail)
			}
			if !preflight.AllPassed(results) {
				return errors.New("one or more checks failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}
