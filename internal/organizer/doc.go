// Package organizer sorts the regular files of one directory into category
// subfolders.
//
// An Organizer snapshots the eligible entries of the target directory once,
// classifies each by extension through a category.Table, resolves a
// collision-free destination name inside <dir>/<category>, and moves the file
// there. Exactly one progress Event is emitted per snapshot entry, in
// snapshot order, whether or not the move succeeded. Per-file failures are
// logged and recorded in Result.Failures; only the pre-flight directory check
// is returned as an error.
package organizer
