package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sortdir/internal/config"
	"sortdir/internal/logging"
	"sortdir/internal/runexec"
)

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var pathFlag string
	var dryRun bool
	var noLog bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "organize [dir]",
		Short: "Sort the files of a directory into category subfolders",
		Long: `Move every regular file directly inside the directory into a subfolder
named after its category (Images, Documents, ...). Name collisions get a
" (n)" suffix; nothing is overwritten. Subdirectories are left alone.

Files matching [organizer] exclude_patterns (by default "sortdir-log-*.txt")
are never moved, and while [run_log] is enabled neither are names matching
"<run_log.prefix>-*.txt". A file of your own named like a run log therefore
stays where it is; change both settings if that gets in the way.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolveTargetDir(pathFlag, args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dryRun {
				return printPlan(cmd.OutOrStdout(), cfg, dir)
			}

			logger, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			store := ctx.openHistory(logger, noHistory)
			if store != nil {
				defer store.Close()
			}

			out := cmd.OutOrStdout()
			color := shouldColorize(out)
			outcome, err := runexec.Run(cmd.Context(), runexec.Options{
				Config:   cfg,
				Logger:   logger,
				Store:    store,
				Frontend: "cli",
				Dir:      dir,
				Progress: progressPrinter(out),
				WriteLog: cfg.RunLog.Enabled && !noLog,
			})
			if err != nil {
				if outcome.LogPath != "" {
					fmt.Fprintf(out, "Error log written to %s\n", outcome.LogPath)
				}
				return describeRunError(err, dir)
			}

			fmt.Fprintln(out, colorize(color, ansiGreen, runexec.CompletionMessage(outcome.Result.Moved)))
			if failures := outcome.Result.Failures; len(failures) > 0 {
				fmt.Fprintln(out, colorize(color, ansiYellow, fmt.Sprintf("%d file(s) could not be moved:", len(failures))))
				for _, f := range failures {
					fmt.Fprintf(out, "  %s -> %s: %v\n", f.Name, f.Category, f.Err)
				}
			}
			if outcome.LogPath != "" {
				fmt.Fprintf(out, "Run log written to %s\n", outcome.LogPath)
			}
			if outcome.RunID != "" {
				fmt.Fprintln(out, colorize(color, ansiDim, "Run ID: "+outcome.RunID))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pathFlag, "path", "p", "", "Directory to organize")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show where each file would go without moving anything")
	cmd.Flags().BoolVar(&noLog, "no-log", false, "Do not write a run log into the directory")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history database")
	return cmd
}

// resolveTargetDir accepts the directory as an argument or --path, not both
// with different values.
func resolveTargetDir(pathFlag string, args []string) (string, error) {
	flagValue := pathFlag
	var argValue string
	if len(args) > 0 {
		argValue = args[0]
	}
	if strings.TrimSpace(flagValue) == "" {
		flagValue = ""
	}
	if strings.TrimSpace(argValue) == "" {
		argValue = ""
	}
	switch {
	case flagValue == "" && argValue == "":
		return "", errors.New("a directory is required (pass it as an argument or with --path)")
	case flagValue != "" && argValue != "" && flagValue != argValue:
		return "", fmt.Errorf("conflicting directories: %q and --path %q", argValue, flagValue)
	}
	target := argValue
	if target == "" {
		target = flagValue
	}
	expanded, err := config.ExpandPath(target)
	if err != nil {
		return "", fmt.Errorf("resolve directory: %w", err)
	}
	return expanded, nil
}

func printPlan(out io.Writer, cfg *config.Config, dir string) error {
	org, err := runexec.NewOrganizer(cfg, logging.NewNop())
	if err != nil {
		return err
	}
	plan, err := org.Plan(dir)
	if err != nil {
		return describeRunError(err, dir)
	}
	if len(plan) == 0 {
		fmt.Fprintln(out, runexec.CompletionMessage(0))
		return nil
	}

	rows := make([][]string, 0, len(plan))
	for i, move := range plan {
		dest := "(no free name)"
		if move.Destination != "" {
			if rel, err := filepath.Rel(dir, move.Destination); err == nil {
				dest = rel
			} else {
				dest = move.Destination
			}
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), move.Entry.Name, move.Category, dest})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "File", "Category", "Destination"}, rows, []columnAlignment{alignRight}))
	fmt.Fprintf(out, "%d file(s) would be moved (dry run, nothing changed).\n", len(plan))
	return nil
}

