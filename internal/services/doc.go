// Package services defines shared utilities consumed by the organizer and the
// front ends that drive it.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, target directories, and the
//     driving front end for logging and history.
//   - Structured error markers plus the Wrap helper, so callers can tell a
//     rejected request (validation, conflict) from an unexpected failure and
//     choose between a targeted and a generic message.
//
// Use these helpers when wiring new commands so error reporting and
// observability stay uniform between the CLI and the interactive UI.
package services
