package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const lockFileName = "gridsnap.lock"

var errLockHeld = errors.New("lock already held")

// FileLock serializes access to files in the config directory across
// processes. It locks a sibling lock file, never the data file itself.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock creates a FileLock guarding path. The lock file lives in the
// same directory.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: filepath.Join(filepath.Dir(path), lockFileName)}
}

// Lock blocks until an exclusive lock is held.
func (l *FileLock) Lock() error {
	return l.acquire(true)
}

// RLock blocks until a shared lock is held. Any number of readers may hold
// it at once.
func (l *FileLock) RLock() error {
	return l.acquire(false)
}

func (l *FileLock) acquire(exclusive bool) error {
	if l.file != nil {
		return errLockHeld
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(f, exclusive); err != nil {
		f.Close()
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	l.file = f
	return nil
}

// Unlock releases the lock. Unlocking an unheld lock is a no-op.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := unlockFile(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return f.Close()
}
