package runexec

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"sortdir/internal/category"
	"sortdir/internal/config"
	"sortdir/internal/dirlock"
	"sortdir/internal/history"
	"sortdir/internal/logging"
	"sortdir/internal/organizer"
	"sortdir/internal/runlog"
	"sortdir/internal/services"
)

const component = "runexec"

// Options controls one organize run and the collaborators it feeds.
type Options struct {
	Config    *config.Config
	Logger    *slog.Logger
	Organizer *organizer.Organizer
	// Store receives the run and its moves when non-nil.
	Store    *history.Store
	Frontend string
	Dir      string
	// Progress is the front end's sink. It runs after the run log and
	// history sinks for each event.
	Progress organizer.ProgressFunc
	// Log collects the run-log lines. A fresh log is used when nil.
	Log *runlog.Log
	// WriteLog stores the run log next to the organized files (or the error
	// log in the state log directory when the target is unusable).
	WriteLog bool
}

// Outcome describes a finished run.
type Outcome struct {
	RunID   string
	Dir     string
	Result  organizer.Result
	Log     *runlog.Log
	LogPath string
}

// NewOrganizer builds an organizer from cfg: category overrides, the run-log
// exclusion pattern, and the running executable when exclude_self is set.
func NewOrganizer(cfg *config.Config, logger *slog.Logger) (*organizer.Organizer, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	table, err := category.New(cfg.Categories)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, component, "categories", "invalid category override", err)
	}
	patterns := append([]string(nil), cfg.Organizer.ExcludePatterns...)
	if cfg.RunLog.Enabled {
		patterns = appendUnique(patterns, runlog.Pattern(cfg.RunLog.Prefix))
	}
	opts := []organizer.Option{organizer.WithExcludePatterns(patterns...)}
	if cfg.Organizer.ExcludeSelf {
		if exe, err := os.Executable(); err == nil {
			opts = append(opts, organizer.WithExclude(exe))
		} else {
			logger.Debug("executable path unavailable; self exclusion skipped", logging.Error(err))
		}
	}
	return organizer.New(table, logger, opts...), nil
}

// Run organizes opts.Dir under a directory lock, feeding the run log, the
// history store and the front end's progress sink.
func Run(ctx context.Context, opts Options) (Outcome, error) {
	if opts.Config == nil {
		return Outcome{}, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	if opts.Organizer == nil {
		org, err := NewOrganizer(opts.Config, opts.Logger)
		if err != nil {
			return Outcome{}, err
		}
		opts.Organizer = org
	}
	if opts.Log == nil {
		opts.Log = runlog.New()
	}

	dir := opts.Dir
	if strings.TrimSpace(dir) != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	out := Outcome{Dir: dir, Log: opts.Log}

	ctx = services.WithFrontend(services.WithDirectory(ctx, dir), opts.Frontend)
	logger := logging.NewComponentLogger(logging.WithContext(ctx, opts.Logger), component)

	opts.Log.Start(dir)

	if err := organizer.CheckDirectory(dir); err != nil {
		return out, fail(logger, &out, opts, err)
	}

	lock, err := dirlock.Acquire(opts.Config.LockDir(), dir)
	if err != nil {
		return out, fail(logger, &out, opts, err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Debug("release directory lock failed", logging.Error(err))
		}
	}()

	sinks := []organizer.ProgressFunc{opts.Log.Progress()}
	if opts.Store != nil {
		run, err := opts.Store.BeginRun(ctx, dir, opts.Frontend)
		if err != nil {
			logging.WarnWithContext(logger, "history unavailable; run continues unrecorded", "history_begin_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check "+opts.Store.Path()),
				logging.String(logging.FieldImpact, "this run will not appear in history"),
			)
		} else {
			out.RunID = run.ID
			ctx = services.WithRunID(ctx, run.ID)
			logger = logger.With(logging.String(logging.FieldRunID, run.ID))
			sinks = append(sinks, opts.Store.Recorder(ctx, run.ID, opts.Logger))
		}
	}
	sinks = append(sinks, opts.Progress)

	logger.Info("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.Bool("history", out.RunID != ""),
	)

	result, runErr := opts.Organizer.Organize(ctx, dir, organizer.Tee(sinks...))
	out.Result = result

	if out.RunID != "" {
		if err := opts.Store.FinishRun(ctx, out.RunID, result, runErr); err != nil {
			logger.Warn("history finish failed", logging.Error(err))
		}
	}
	if runErr != nil {
		return out, fail(logger, &out, opts, runErr)
	}

	opts.Log.Complete(result.Moved)
	if opts.WriteLog {
		path, err := opts.Log.Write(dir, opts.Config.RunLog.Prefix)
		if err != nil {
			logging.WarnWithContext(logger, "run log not written", "run_log_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check write permission on "+dir),
				logging.String(logging.FieldImpact, "no run log next to the organized files"),
			)
		} else {
			out.LogPath = path
		}
	}

	logger.Info("run completed",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("moved", result.Moved),
		logging.Int("failed", len(result.Failures)),
		logging.String("run_log", out.LogPath),
	)
	return out, nil
}

// CompletionMessage is the summary shown after a successful run.
func CompletionMessage(moved int) string {
	if moved > 0 {
		return fmt.Sprintf("Organization complete! Moved %d files.", moved)
	}
	return "No files to move, directory is already tidy."
}

func fail(logger *slog.Logger, out *Outcome, opts Options, runErr error) error {
	opts.Log.Fail(runErr)

	logging.ErrorWithContext(logger, "run failed", "run_failure",
		logging.String("error_kind", services.Kind(runErr)),
		logging.Error(runErr),
		logging.String(logging.FieldErrorHint, failureHint(runErr, out.Dir)),
		logging.String(logging.FieldImpact, "no files were moved"),
	)

	if opts.WriteLog {
		path, err := writeErrorLog(opts, out.Dir)
		if err != nil {
			logger.Warn("error log not written", logging.Error(err))
		} else {
			out.LogPath = path
		}
	}
	return runErr
}

func failureHint(err error, dir string) string {
	switch {
	case errors.Is(err, organizer.ErrNotADirectory):
		return "choose an existing directory instead of " + dir
	case errors.Is(err, dirlock.ErrBusy):
		return "wait for the other sortdir run on " + dir + " to finish"
	default:
		return "check permissions on " + dir
	}
}

// writeErrorLog prefers the target directory and falls back to the state log
// directory when the target cannot take it.
func writeErrorLog(opts Options, dir string) (string, error) {
	prefix := opts.Config.RunLog.Prefix
	if organizer.CheckDirectory(dir) == nil {
		if path, err := opts.Log.Write(dir, prefix); err == nil {
			return path, nil
		}
	}
	logDir := opts.Config.LogDir()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return "", fmt.Errorf("ensure log directory: %w", err)
	}
	return opts.Log.Write(logDir, prefix)
}

func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
