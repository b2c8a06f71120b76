package organizer

import (
	"os"
	"path/filepath"
)

// Entry is one file eligible for organizing.
type Entry struct {
	Name string
	Path string
	Size int64
}

// Snapshot lists the eligible entries directly inside dir, in name order.
// Eligible means a regular file after following symlinks, not one of the
// excluded paths, and not matching an exclusion pattern. Entries that vanish
// or cannot be stat'ed while listing are skipped.
func (o *Organizer) Snapshot(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	excluded := o.excludedInfos()

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if o.matchesPattern(name) {
			continue
		}
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if isExcluded(info, excluded) {
			continue
		}
		entries = append(entries, Entry{Name: name, Path: path, Size: info.Size()})
	}
	return entries, nil
}

func (o *Organizer) excludedInfos() []os.FileInfo {
	if len(o.exclude) == 0 {
		return nil
	}
	infos := make([]os.FileInfo, 0, len(o.exclude))
	for _, path := range o.exclude {
		if info, err := os.Stat(path); err == nil {
			infos = append(infos, info)
		}
	}
	return infos
}

func (o *Organizer) matchesPattern(name string) bool {
	for _, pattern := range o.patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

func isExcluded(info os.FileInfo, excluded []os.FileInfo) bool {
	for _, ex := range excluded {
		if os.SameFile(info, ex) {
			return true
		}
	}
	return false
}
