package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sortdir/internal/category"
	"sortdir/internal/fileutil"
	"sortdir/internal/logging"
	"sortdir/internal/services"
)

// ErrNotADirectory is returned by Organize when the target is missing or is
// not a directory. It matches services.ErrValidation.
var ErrNotADirectory = fmt.Errorf("%w: not a directory", services.ErrValidation)

const component = "organizer"

// Move records one successful relocation.
type Move struct {
	Name        string // original name in the target directory
	Category    string
	Destination string
}

// Failure records one file that could not be moved. The file is left where
// it was.
type Failure struct {
	Name     string
	Category string
	Err      error
}

// Result summarizes a run. Moved is authoritative; Moves and Failures carry
// the details in snapshot order.
type Result struct {
	Moved    int
	Total    int
	Moves    []Move
	Failures []Failure
}

// Organizer moves files into category subfolders. It holds no per-run state
// and may be reused, but a single Organize call is strictly sequential.
type Organizer struct {
	table    *category.Table
	logger   *slog.Logger
	exclude  []string
	patterns []string
}

// Option customizes an Organizer.
type Option func(*Organizer)

// WithExclude skips snapshot entries that are the same file as any of paths.
func WithExclude(paths ...string) Option {
	return func(o *Organizer) {
		for _, path := range paths {
			if path = strings.TrimSpace(path); path != "" {
				o.exclude = append(o.exclude, path)
			}
		}
	}
}

// WithExcludePatterns skips snapshot entries whose name matches any glob.
func WithExcludePatterns(patterns ...string) Option {
	return func(o *Organizer) {
		for _, pattern := range patterns {
			if pattern = strings.TrimSpace(pattern); pattern != "" {
				o.patterns = append(o.patterns, pattern)
			}
		}
	}
}

// New builds an Organizer. A nil table means category.Default().
func New(table *category.Table, logger *slog.Logger, opts ...Option) *Organizer {
	if table == nil {
		table = category.Default()
	}
	o := &Organizer{
		table:  table,
		logger: logging.NewComponentLogger(logger, component),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

// Table returns the classification table in use.
func (o *Organizer) Table() *category.Table {
	return o.table
}

// Organize sorts the files of dir into category subfolders, reporting one
// event per file to progress (which may be nil). The context only carries
// logging fields; a run is never cancelled midway.
func (o *Organizer) Organize(ctx context.Context, dir string, progress ProgressFunc) (Result, error) {
	logger := logging.WithContext(ctx, o.logger)

	if err := CheckDirectory(dir); err != nil {
		return Result{}, err
	}

	entries, err := o.Snapshot(dir)
	if err != nil {
		return Result{}, services.Wrap(services.ErrTransient, component, "snapshot", "read directory "+dir, err)
	}

	result := Result{Total: len(entries)}
	if len(entries) == 0 {
		logger.Info("nothing to organize", logging.String(logging.FieldEventType, "organize_noop"))
		return result, nil
	}

	started := time.Now()
	logger.Info("organize started",
		logging.String(logging.FieldEventType, "organize_started"),
		logging.Int("total", len(entries)),
	)
	sampler := logging.NewProgressSampler(10)
	total := len(entries)

	for i, entry := range entries {
		name := o.table.Classify(entry.Name)
		evt := Event{
			Message:  FormatMessage(i+1, total, entry.Name, name),
			Fraction: float64(i+1) / float64(total),
			Index:    i + 1,
			Total:    total,
			Name:     entry.Name,
			Category: name,
		}

		dest, err := o.moveEntry(dir, entry, name)
		if err != nil {
			evt.Err = err
			result.Failures = append(result.Failures, Failure{Name: entry.Name, Category: name, Err: err})
			logging.WarnWithContext(logger, "file move failed; left in place", "move_failed",
				logging.String("file", entry.Name),
				logging.String("category", name),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check permissions on the directory and its category folders"),
				logging.String(logging.FieldImpact, "file was not organized"),
			)
		} else {
			evt.Destination = dest
			result.Moved++
			result.Moves = append(result.Moves, Move{Name: entry.Name, Category: name, Destination: dest})
			logger.Debug("moved file",
				logging.String("file", entry.Name),
				logging.String("category", name),
				logging.String("destination", dest),
			)
		}

		if sampler.ShouldLog(evt.Fraction*100, "moving") {
			logger.Info("organize progress",
				logging.Int("index", evt.Index),
				logging.Int("total", total),
				logging.Int("moved", result.Moved),
			)
		}
		if progress != nil {
			progress(evt)
		}
	}

	logger.Info("organize complete",
		logging.String(logging.FieldEventType, "organize_complete"),
		logging.Int("moved", result.Moved),
		logging.Int("failed", len(result.Failures)),
		logging.Int("total", total),
		logging.Duration("duration", time.Since(started)),
	)
	return result, nil
}

func (o *Organizer) moveEntry(dir string, entry Entry, name string) (string, error) {
	categoryDir := filepath.Join(dir, name)
	if err := os.MkdirAll(categoryDir, 0o755); err != nil {
		return "", fmt.Errorf("create category folder: %w", err)
	}
	dest, err := ResolveDestination(categoryDir, entry.Name)
	if err != nil {
		return "", fmt.Errorf("resolve destination: %w", err)
	}
	if filepath.Base(dest) != entry.Name {
		o.logger.Debug("destination renamed to avoid collision",
			logging.Args(append(logging.DecisionAttrs("destination_name", filepath.Base(dest), "name_taken"),
				logging.String("file", entry.Name))...)...,
		)
	}
	if err := fileutil.MoveFile(entry.Path, dest); err != nil {
		return "", err
	}
	return dest, nil
}

// CheckDirectory reports ErrNotADirectory unless dir names an existing
// directory. It never touches the filesystem beyond a stat.
func CheckDirectory(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return services.Wrap(ErrNotADirectory, component, "preflight", "no directory given", nil)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return services.Wrap(ErrNotADirectory, component, "preflight", dir+" does not exist", nil)
		}
		return services.Wrap(ErrNotADirectory, component, "preflight", dir, err)
	}
	if !info.IsDir() {
		return services.Wrap(ErrNotADirectory, component, "preflight", dir+" is not a directory", nil)
	}
	return nil
}
