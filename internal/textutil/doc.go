// Package textutil holds small string helpers shared by the config
// validator and the front ends.
//
// SanitizeFileName is the reference for what counts as a safe folder name
// when validating category overrides; ShortenPath keeps long directory paths
// readable in tables and status lines.
package textutil
