// Package runlog builds the plain-text record of one organize run and stores
// it next to the organized files or at a user-chosen path.
package runlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sortdir/internal/organizer"
)

const (
	headerLayout = "2006-01-02 15:04:05"
	fileLayout   = "20060102-150405"
	maxNameTries = 1000
)

// Log accumulates run-log lines. All methods are safe for concurrent use.
type Log struct {
	mu     sync.Mutex
	lines  []string
	failed bool
	now    func() time.Time
}

// New returns an empty log.
func New() *Log {
	return &Log{now: time.Now}
}

// Start records the run header for dir.
func (l *Log) Start(dir string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines,
		fmt.Sprintf("=== Organization started at %s ===", l.now().Format(headerLayout)),
		"Directory: "+dir,
		"",
	)
}

// Append adds one line.
func (l *Log) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

// Progress returns a sink that appends each event's message.
func (l *Log) Progress() organizer.ProgressFunc {
	return func(evt organizer.Event) {
		l.Append(evt.Message)
	}
}

// Complete records the run footer.
func (l *Log) Complete(moved int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines,
		"",
		fmt.Sprintf("=== Organization completed at %s ===", l.now().Format(headerLayout)),
		fmt.Sprintf("Files moved: %d", moved),
	)
}

// Fail records a fatal error and marks the log as an error log.
func (l *Log) Fail(err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failed = true
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	l.lines = append(l.lines, "ERROR: "+msg)
}

// Failed reports whether Fail was called.
func (l *Log) Failed() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failed
}

// Lines returns a copy of the recorded lines.
func (l *Log) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// String joins the lines with newlines.
func (l *Log) String() string {
	return strings.Join(l.Lines(), "\n")
}

// Pattern returns the glob matching run logs written with prefix.
func Pattern(prefix string) string {
	return prefix + "-*.txt"
}

// FileName returns the run-log file name for a run finishing at ts.
func FileName(prefix string, failed bool, ts time.Time) string {
	if failed {
		return fmt.Sprintf("%s-error-%s.txt", prefix, ts.Format(fileLayout))
	}
	return fmt.Sprintf("%s-%s.txt", prefix, ts.Format(fileLayout))
}

// Write stores the log in dir as <prefix>-<timestamp>.txt (or
// <prefix>-error-<timestamp>.txt after Fail), appending " (n)" before the
// extension when that name is taken. It returns the written path.
func (l *Log) Write(dir, prefix string) (string, error) {
	name := FileName(prefix, l.Failed(), l.now())
	base := strings.TrimSuffix(name, ".txt")
	content := []byte(l.String())

	for n := 0; n < maxNameTries; n++ {
		candidate := name
		if n > 0 {
			candidate = fmt.Sprintf("%s (%d).txt", base, n)
		}
		path := filepath.Join(dir, candidate)
		err := writeExclusive(path, content)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("write run log: %w", err)
		}
	}
	return "", fmt.Errorf("write run log: no free name for %s in %s", name, dir)
}

// Save writes the log to path, replacing any existing file.
func (l *Log) Save(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("save run log: empty path")
	}
	if err := os.WriteFile(path, []byte(l.String()), 0o644); err != nil {
		return fmt.Errorf("save run log: %w", err)
	}
	return nil
}

func writeExclusive(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}
