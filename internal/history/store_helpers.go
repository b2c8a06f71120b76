package history

import (
	"database/sql"
	"errors"
	"time"
)

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const runColumns = "id, directory, frontend, started_at, finished_at, total, moved, failed, error_message, error_kind"

const moveColumns = "run_id, seq, source, destination, category, error_message, created_at"

type scanner interface{ Scan(dest ...any) error }

func scanRun(row scanner) (Run, error) {
	var (
		run         Run
		frontend    sql.NullString
		startedRaw  string
		finishedRaw sql.NullString
		errMessage  sql.NullString
		errKind     sql.NullString
	)
	if err := row.Scan(
		&run.ID,
		&run.Directory,
		&frontend,
		&startedRaw,
		&finishedRaw,
		&run.Total,
		&run.Moved,
		&run.Failed,
		&errMessage,
		&errKind,
	); err != nil {
		return Run{}, err
	}
	run.Frontend = frontend.String
	run.Error = errMessage.String
	run.ErrorKind = errKind.String
	if started, err := parseTime(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTime(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return run, nil
}

func scanMove(row scanner) (MoveRecord, error) {
	var (
		move        MoveRecord
		destination sql.NullString
		errMessage  sql.NullString
		createdRaw  string
	)
	if err := row.Scan(
		&move.RunID,
		&move.Seq,
		&move.Source,
		&destination,
		&move.Category,
		&errMessage,
		&createdRaw,
	); err != nil {
		return MoveRecord{}, err
	}
	move.Destination = destination.String
	move.Error = errMessage.String
	if created, err := parseTime(createdRaw); err == nil {
		move.CreatedAt = created
	}
	return move, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(timeLayout, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
