package organizer

import (
	"fmt"
	"path/filepath"

	"sortdir/internal/category"
	"sortdir/internal/fileutil"
)

// maxCollisionProbes bounds the " (n)" search; a category folder holding this
// many copies of one name is treated as a failure for that file.
const maxCollisionProbes = 100000

// CandidateName returns the n-th collision name for name: "photo (1).jpg"
// for n=1. n=0 returns name unchanged.
func CandidateName(name string, n int) string {
	if n <= 0 {
		return name
	}
	base, ext := category.SplitExt(name)
	return fmt.Sprintf("%s (%d)%s", base, n, ext)
}

// ResolveDestination returns the first path in categoryDir, starting with
// name itself and then "base (1).ext", "base (2).ext", ..., at which no entry
// exists.
func ResolveDestination(categoryDir, name string) (string, error) {
	return resolveDestination(categoryDir, name, nil)
}

// resolveDestination also treats names in claimed as taken; dry-run planning
// uses it to account for moves it has not performed.
func resolveDestination(categoryDir, name string, claimed map[string]struct{}) (string, error) {
	for n := 0; n <= maxCollisionProbes; n++ {
		candidate := filepath.Join(categoryDir, CandidateName(name, n))
		if _, taken := claimed[candidate]; taken {
			continue
		}
		exists, err := fileutil.Exists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free name for %q in %s", name, categoryDir)
}
