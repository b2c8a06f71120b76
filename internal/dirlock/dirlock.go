// Package dirlock keeps two sortdir processes from organizing the same
// directory at once.
package dirlock

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"sortdir/internal/services"
)

// ErrBusy is returned when another process holds the lock. It matches
// services.ErrConflict.
var ErrBusy = fmt.Errorf("%w: directory is being organized by another process", services.ErrConflict)

// Lock is a held directory lock.
type Lock struct {
	dir  string
	path string
	fl   *flock.Flock
}

// PathFor returns the lock file used for dir inside lockDir. The name is
// derived from the absolute, symlink-resolved directory path.
func PathFor(lockDir, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(lockDir, hex.EncodeToString(sum[:])[:16]+".lock"), nil
}

// Acquire takes a non-blocking lock for dir, creating lockDir when missing.
func Acquire(lockDir, dir string) (*Lock, error) {
	path, err := PathFor(lockDir, dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}

	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(ErrBusy, "dirlock", "acquire", dir, nil)
	}
	return &Lock{dir: dir, path: path, fl: fl}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release unlocks. It is safe to call more than once.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}
