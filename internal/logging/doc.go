// Package logging assembles structured slog loggers and formatting helpers used
// across sortdir.
//
// It owns the configurable console/JSON handlers, the fan-out handler that
// mirrors console output into the per-invocation application log, and
// context-aware helpers that tag log lines with run IDs and target
// directories. The package also provides a no-op logger for tests and wiring
// code that cannot fail.
package logging
