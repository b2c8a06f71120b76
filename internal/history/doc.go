// Package history records organize runs and their per-file outcomes in a
// SQLite database under the state directory.
//
// The store is an audit trail: each run gets a UUID, every progress event
// becomes a row in moves, and FinishRun stamps the totals and any fatal
// error. Nothing here reverses a move.
package history
