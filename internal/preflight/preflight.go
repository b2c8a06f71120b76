package preflight

import "sortdir/internal/config"

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Optional checks report missing extras; they never fail a run.
	Optional bool
}

// RunAll executes every applicable check for cfg. The target checks are
// skipped when target is empty.
func RunAll(cfg *config.Config, target string) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	targetOK := false
	if target != "" {
		check := CheckDirectoryAccess("Target directory", target)
		targetOK = check.Passed
		results = append(results, check)
	}
	state := CheckCreatable("State directory", cfg.Paths.StateDir)
	results = append(results, state, CheckCategories(cfg))

	if cfg.History.Enabled && state.Passed {
		results = append(results, CheckHistory(cfg))
	}
	if targetOK && state.Passed {
		results = append(results, CheckLock(cfg, target))
	}
	return append(results, CheckClipboard())
}

// AllPassed reports whether every required result passed.
func AllPassed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return false
		}
	}
	return true
}
