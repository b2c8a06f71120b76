package organizer

import "fmt"

// Event reports the outcome of one file within a run.
type Event struct {
	Message  string
	Fraction float64

	Index       int // 1-based position in the snapshot
	Total       int
	Name        string
	Category    string
	Destination string // empty when the move failed
	Err         error
}

// ProgressFunc consumes progress events. It is invoked synchronously on the
// goroutine running Organize.
type ProgressFunc func(Event)

// MessageFunc adapts a plain (message, fraction) callback.
func MessageFunc(fn func(message string, fraction float64)) ProgressFunc {
	if fn == nil {
		return nil
	}
	return func(evt Event) {
		fn(evt.Message, evt.Fraction)
	}
}

// Tee fans each event out to every non-nil consumer in order.
func Tee(fns ...ProgressFunc) ProgressFunc {
	active := make([]ProgressFunc, 0, len(fns))
	for _, fn := range fns {
		if fn != nil {
			active = append(active, fn)
		}
	}
	switch len(active) {
	case 0:
		return nil
	case 1:
		return active[0]
	}
	return func(evt Event) {
		for _, fn := range active {
			fn(evt)
		}
	}
}

// FormatMessage renders the human-readable progress line for one file.
func FormatMessage(index, total int, name, category string) string {
	return fmt.Sprintf("Moving (%d/%d): %s -> %s", index, total, name, category)
}
