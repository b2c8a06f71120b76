package organizer

import (
	"path/filepath"

	"sortdir/internal/services"
)

// PlannedMove is one move a run would perform.
type PlannedMove struct {
	Entry       Entry
	Category    string
	Destination string
}

// Plan previews a run without touching the filesystem: it snapshots dir and
// resolves each destination as Organize would, treating earlier planned
// moves as already taken.
func (o *Organizer) Plan(dir string) ([]PlannedMove, error) {
	if err := CheckDirectory(dir); err != nil {
		return nil, err
	}
	entries, err := o.Snapshot(dir)
	if err != nil {
		return nil, services.Wrap(services.ErrTransient, component, "plan", "read directory "+dir, err)
	}

	claimed := make(map[string]struct{}, len(entries))
	plan := make([]PlannedMove, 0, len(entries))
	for _, entry := range entries {
		name := o.table.Classify(entry.Name)
		dest, err := resolveDestination(filepath.Join(dir, name), entry.Name, claimed)
		if err != nil {
			dest = ""
		} else {
			claimed[dest] = struct{}{}
		}
		plan = append(plan, PlannedMove{Entry: entry, Category: name, Destination: dest})
	}
	return plan, nil
}
