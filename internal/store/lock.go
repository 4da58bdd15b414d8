package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	serrors "github.com/Aman-CERP/seroost/internal/errors"
)

// Lock is a cross-process lock guarding one index file. Two index runs
// against the same file would otherwise race on the final rename.
type Lock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// NewLock returns a lock backed by the file at path (typically index.json.lock).
func NewLock(path string) *Lock {
	return &Lock{
		path:  path,
		flock: flock.New(path),
	}
}

// TryLock acquires the lock without blocking. If another process holds it,
// the error is ERR_210_INDEX_LOCKED.
func (l *Lock) TryLock() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	acquired, err := l.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !acquired {
		return serrors.New(serrors.ErrCodeIndexLocked, "another index run is in progress", nil).
			WithDetail("lock", l.path).
			WithSuggestion("Wait for the other 'seroost index' to finish")
	}

	l.locked = true
	return nil
}

// Unlock releases the lock. Safe to call on an unlocked Lock.
func (l *Lock) Unlock() error {
	if !l.locked {
		return nil
	}
	l.locked = false
	if err := l.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// IsLocked reports whether another process currently holds the lock at
// path. A missing lock file means unlocked; nothing is created.
func IsLocked(path string) bool {
	if _, err := os.Stat(path); err != nil {
		return false
	}
	f := flock.New(path)
	acquired, err := f.TryLock()
	if err != nil {
		return false
	}
	if acquired {
		_ = f.Unlock()
		return false
	}
	return true
}
