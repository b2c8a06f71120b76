// Package tui is the interactive front end: a path input that accepts typed,
// pasted or dropped folders, a live progress bar, and a scrolling view of the
// run log that can be saved or copied once the run ends.
//
// Runs execute on a command goroutine through runexec.Run; progress events
// reach Update over a channel so the model is only ever touched by the
// bubbletea event loop.
package tui
