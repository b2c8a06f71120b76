package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"sortdir/internal/category"
	"sortdir/internal/config"
	"sortdir/internal/deps"
	"sortdir/internal/dirlock"
	"sortdir/internal/history"
)

// CheckDirectoryAccess verifies that the directory exists and is readable,
// writable and searchable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCreatable passes when path is an accessible directory or when its
// nearest existing ancestor would let sortdir create it.
func CheckCreatable(name, path string) Result {
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path)
	}
	parent := filepath.Dir(path)
	for {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		next := filepath.Dir(parent)
		if next == parent {
			break
		}
		parent = next
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckCategories verifies that the configured overrides build a table.
func CheckCategories(cfg *config.Config) Result {
	const name = "Categories"
	table, err := category.New(cfg.Categories)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d extensions, %d overrides", table.Len(), len(cfg.Categories))}
}

// CheckHistory opens the history database to confirm the schema matches.
func CheckHistory(cfg *config.Config) Result {
	const name = "History database"
	store, err := history.Open(cfg)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, history.ErrSchemaMismatch) {
			detail = "schema mismatch: delete " + cfg.HistoryPath()
		}
		return Result{Name: name, Detail: detail}
	}
	defer store.Close()
	return Result{Name: name, Passed: true, Detail: store.Path()}
}

// CheckLock reports whether another process is organizing target.
func CheckLock(cfg *config.Config, target string) Result {
	const name = "Directory lock"
	lock, err := dirlock.Acquire(cfg.LockDir(), target)
	if err != nil {
		if errors.Is(err, dirlock.ErrBusy) {
			return Result{Name: name, Detail: "another sortdir process is organizing this directory"}
		}
		return Result{Name: name, Detail: err.Error()}
	}
	_ = lock.Release()
	return Result{Name: name, Passed: true, Detail: "free"}
}

// CheckClipboard reports whether the TUI can copy the run log.
func CheckClipboard() Result {
	status := deps.CheckClipboard()
	return Result{Name: "Clipboard", Passed: status.Available, Detail: status.Detail, Optional: true}
}
