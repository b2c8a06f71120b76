// Package category owns the extension to category classification policy.
//
// A Table is immutable once built: Default returns the built-in mapping and
// New layers validated overrides over a private copy, so tests and callers can
// substitute alternate tables without touching shared state. Extensions are
// compared lower-cased with their leading dot; unknown extensions synthesize
// "<EXT> Files" and extension-less names fall back to "Other Files".
package category
