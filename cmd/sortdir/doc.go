// Package main hosts the sortdir CLI entrypoint and command graph.
//
// The Cobra command tree covers headless organize runs, the interactive
// front end, run history, category listings, preflight checks and
// configuration scaffolding. It resolves configuration once and builds the
// console plus file logger so subcommands only wire the internal packages
// together.
//
// Keep this package lean: behaviour belongs in internal packages and is
// surfaced here through commands and flags.
package main
