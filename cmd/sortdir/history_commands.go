package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sortdir/internal/history"
	"sortdir/internal/textutil"
)

const (
	historyTimeLayout = "2006-01-02 15:04:05"
	shortIDLen        = 8
	dirColumnWidth    = 48
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded organize runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			out := cmd.OutOrStdout()
			if strings.TrimSpace(runID) != "" {
				return printRunDetail(cmd, store, runID)
			}

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet.")
				return nil
			}
			fmt.Fprintln(out, renderRunTable(runs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show the moves of one run (full ID or unique prefix)")

	cmd.AddCommand(newHistoryPruneCommand(ctx))
	return cmd
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return errors.New("--keep must not be negative")
			}
			store, err := openHistoryStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s); kept the newest %d.\n", removed, keep)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 50, "Number of newest runs to keep")
	return cmd
}

func openHistoryStore(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errors.New("run history is disabled (history.enabled = false)")
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

func renderRunTable(runs []history.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.StartedAt.Local().Format(historyTimeLayout),
			textutil.ShortenPath(run.Directory, dirColumnWidth),
			run.Frontend,
			run.Status(),
			strconv.Itoa(run.Moved),
			strconv.Itoa(run.Failed),
			strconv.Itoa(run.Total),
			formatDuration(run.Duration()),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Directory", "Via", "Status", "Moved", "Failed", "Total", "Took"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	)
}

func printRunDetail(cmd *cobra.Command, store *history.Store, prefix string) error {
	out := cmd.OutOrStdout()
	id, err := store.ResolveRunID(cmd.Context(), prefix)
	if err != nil {
		return err
	}
	run, err := store.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	moves, err := store.Moves(cmd.Context(), id)
	if err != nil {
		return err
	}

	color := shouldColorize(out)
	printRunHeader(out, color, run)

	if len(moves) == 0 {
		fmt.Fprintln(out, "No files were processed in this run.")
		return nil
	}
	rows := make([][]string, 0, len(moves))
	for _, move := range moves {
		result := move.Error
		if move.Succeeded() {
			result = move.Destination
			if rel, err := filepath.Rel(run.Directory, move.Destination); err == nil {
				result = rel
			}
		} else {
			result = "failed: " + result
		}
		rows = append(rows, []string{strconv.Itoa(move.Seq), move.Source, move.Category, result})
	}
	fmt.Fprintln(out, renderTable([]string{"#", "File", "Category", "Result"}, rows, []columnAlignment{alignRight}))
	return nil
}

func printRunHeader(out io.Writer, color bool, run history.Run) {
	fmt.Fprintln(out, colorize(color, ansiBlue, "Run "+run.ID))
	fmt.Fprintf(out, "Directory: %s\n", run.Directory)
	if run.Frontend != "" {
		fmt.Fprintf(out, "Via:       %s\n", run.Frontend)
	}
	fmt.Fprintf(out, "Started:   %s\n", run.StartedAt.Local().Format(historyTimeLayout))
	if run.FinishedAt != nil {
		fmt.Fprintf(out, "Finished:  %s (%s)\n", run.FinishedAt.Local().Format(historyTimeLayout), formatDuration(run.Duration()))
	}
	fmt.Fprintf(out, "Status:    %s (moved %d of %d, %d failed)\n", run.Status(), run.Moved, run.Total, run.Failed)
	if run.Error != "" {
		fmt.Fprintln(out, colorize(color, ansiRed, "Error:     "+run.Error))
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(100 * time.Millisecond).String()
}
