// Package preflight provides readiness checks for the target directory and
// the state that sortdir depends on.
//
// The CLI "sortdir check" command runs RunAll and renders the results; the
// organize command runs CheckDirectoryAccess on its target before taking the
// directory lock. Checks for disabled features (history) are skipped.
package preflight
