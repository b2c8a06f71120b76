package history

import "time"

// Run status labels derived from the stored columns.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusPartial   = "partial"
	StatusFailed    = "failed"
)

// Run is one recorded organize invocation.
type Run struct {
	ID         string
	Directory  string
	Frontend   string
	StartedAt  time.Time
	FinishedAt *time.Time
	Total      int
	Moved      int
	Failed     int
	Error      string
	ErrorKind  string
}

// Status summarizes the run outcome.
func (r Run) Status() string {
	switch {
	case r.Error != "":
		return StatusFailed
	case r.FinishedAt == nil:
		return StatusRunning
	case r.Failed > 0:
		return StatusPartial
	default:
		return StatusCompleted
	}
}

// Duration returns the elapsed run time, or zero while running.
func (r Run) Duration() time.Duration {
	if r.FinishedAt == nil {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// MoveRecord is one per-file outcome within a run.
type MoveRecord struct {
	RunID       string
	Seq         int
	Source      string
	Destination string // empty when the move failed
	Category    string
	Error       string
	CreatedAt   time.Time
}

// Succeeded reports whether the file was moved.
func (m MoveRecord) Succeeded() bool {
	return m.Error == "" && m.Destination != ""
}
