package sigstore

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"fuzzyhash/internal/config"
)

// ErrLocked reports that another process holds the catalog writer lock.
var ErrLocked = errors.New("catalog is locked by another writer")

// WriterLock is an exclusive advisory lock over catalog writes.
type WriterLock struct {
	lock *flock.Flock
}

// AcquireWriter takes the catalog writer lock without blocking. It returns
// ErrLocked when another process already holds it.
func AcquireWriter(cfg *config.Config) (*WriterLock, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", cfg.LockPath(), ErrLocked)
	}
	return &WriterLock{lock: lock}, nil
}

// Path returns the lock file location.
func (l *WriterLock) Path() string {
	if l == nil || l.lock == nil {
		return ""
	}
	return l.lock.Path()
}

// Release unlocks the catalog. It is safe to call more than once.
func (l *WriterLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
