package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"sortdir/internal/logging"
	"sortdir/internal/organizer"
	"sortdir/internal/services"
)

const component = "history"

// minPrefixLen is the shortest run ID prefix ResolveRunID accepts.
const minPrefixLen = 4

// BeginRun records the start of a run on dir and returns it with a fresh ID.
func (s *Store) BeginRun(ctx context.Context, dir, frontend string) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Directory: dir,
		Frontend:  frontend,
		StartedAt: time.Now().UTC(),
	}
	if _, err := s.exec(ctx,
		`INSERT INTO runs (id, directory, frontend, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Directory, nullableString(run.Frontend), formatTime(run.StartedAt),
	); err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordEvent stores the outcome of one progress event.
func (s *Store) RecordEvent(ctx context.Context, runID string, evt organizer.Event) error {
	var errMessage string
	if evt.Err != nil {
		errMessage = evt.Err.Error()
	}
	if _, err := s.exec(ctx,
		`INSERT INTO moves (`+moveColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID,
		evt.Index,
		evt.Name,
		nullableString(evt.Destination),
		evt.Category,
		nullableString(errMessage),
		formatTime(time.Now()),
	); err != nil {
		return fmt.Errorf("insert move: %w", err)
	}
	if _, err := s.exec(ctx, `UPDATE runs SET total = ? WHERE id = ?`, evt.Total, runID); err != nil {
		return fmt.Errorf("update run total: %w", err)
	}
	return nil
}

// Recorder returns a progress sink that stores every event for runID.
// Storage errors are logged and otherwise ignored so a history problem never
// interrupts a run.
func (s *Store) Recorder(ctx context.Context, runID string, logger *slog.Logger) organizer.ProgressFunc {
	logger = logging.NewComponentLogger(logger, component)
	warned := false
	return func(evt organizer.Event) {
		if err := s.RecordEvent(ctx, runID, evt); err != nil && !warned {
			warned = true
			logging.WarnWithContext(logger, "history record failed; run continues", "history_record_failed",
				logging.String(logging.FieldRunID, runID),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check "+s.path),
				logging.String(logging.FieldImpact, "run history will be incomplete"),
			)
		}
	}
}

// FinishRun stamps the run with its totals and, when runErr is non-nil, the
// fatal error and its kind.
func (s *Store) FinishRun(ctx context.Context, runID string, result organizer.Result, runErr error) error {
	var message string
	if runErr != nil {
		message = runErr.Error()
	}
	res, err := s.exec(ctx,
		`UPDATE runs
         SET finished_at = ?, total = ?, moved = ?, failed = ?, error_message = ?, error_kind = ?
         WHERE id = ?`,
		formatTime(time.Now()),
		result.Total,
		result.Moved,
		len(result.Failures),
		nullableString(message),
		nullableString(services.Kind(runErr)),
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return services.Wrap(services.ErrNotFound, component, "finish run", "unknown run "+runID, nil)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun fetches one run by its full ID.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, services.Wrap(services.ErrNotFound, component, "get run", "no run "+id, nil)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ResolveRunID expands a unique ID prefix (at least four characters) to the
// full run ID.
func (s *Store) ResolveRunID(ctx context.Context, prefix string) (string, error) {
	ctx = ensureContext(ctx)
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len(prefix) < minPrefixLen {
		return "", services.Wrap(services.ErrValidation, component, "resolve run",
			fmt.Sprintf("run id prefix must have at least %d characters", minPrefixLen), nil)
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY started_at DESC LIMIT 2`, escaped+"%")
	if err != nil {
		return "", fmt.Errorf("resolve run: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("resolve run: %w", err)
	}
	switch len(ids) {
	case 0:
		return "", services.Wrap(services.ErrNotFound, component, "resolve run", "no run matches "+prefix, nil)
	case 1:
		return ids[0], nil
	default:
		return "", services.Wrap(services.ErrConflict, component, "resolve run", "ambiguous run id "+prefix, nil)
	}
}

// Moves returns the per-file records of a run in snapshot order.
func (s *Store) Moves(ctx context.Context, runID string) ([]MoveRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+moveColumns+` FROM moves WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		move, err := scanMove(rows)
		if err != nil {
			return nil, fmt.Errorf("scan move: %w", err)
		}
		moves = append(moves, move)
	}
	return moves, rows.Err()
}

// Prune deletes all but the newest keep runs together with their moves and
// returns how many runs were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.exec(ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
        )`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return int(n), nil
}
