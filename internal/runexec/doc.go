// Package runexec drives one organize run for a front end.
//
// Run checks the target, takes the per-directory lock, opens a history
// record, fans the organizer's progress events out to the run log, the
// history store and the caller's sink, and finally writes the run log (or
// the error log). The CLI and the TUI both go through Run so their runs are
// recorded and locked the same way.
package runexec
