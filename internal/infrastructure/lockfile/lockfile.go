// Package lockfile keeps two tracker processes from writing progress at once.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// LockedError is returned when another live process holds the lock
type LockedError struct {
	Path string
	PID  int
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("tracker is already running (PID %d holds %s)", e.PID, e.Path)
}

// LockFile is a PID-stamped lock file
type LockFile struct {
	path string
}

// New creates a new LockFile manager
func New(path string) *LockFile {
	return &LockFile{path: path}
}

// Path returns the lock file location
func (l *LockFile) Path() string {
	return l.path
}

// Acquire creates the lock file holding the current PID. A file left behind
// by a process that is no longer running, or one that does not hold a PID,
// is replaced.
func (l *LockFile) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			_, werr := fmt.Fprintf(f, "%d\n", os.Getpid())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(l.path)
				return fmt.Errorf("failed to write lock file: %w", errors.Join(werr, cerr))
			}
			return nil
		}
		if !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("failed to create lock file: %w", err)
		}

		data, err := os.ReadFile(l.path)
		if err != nil {
			return fmt.Errorf("failed to read existing lock file: %w", err)
		}
		if pid, err := strconv.Atoi(strings.TrimSpace(string(data))); err == nil && isProcessRunning(pid) {
			return &LockedError{Path: l.path, PID: pid}
		}
		// Stale or unreadable - remove it and retry once
		_ = os.Remove(l.path)
	}
	return fmt.Errorf("failed to acquire lock file %s", l.path)
}

// Release removes the lock file
func (l *LockFile) Release() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}
	return nil
}

// isProcessRunning checks if a process with the given PID is running
func isProcessRunning(pid int) bool {
	if pid <= 0 {
		return false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// On Unix systems, FindProcess always succeeds
	// Signal 0 checks for existence without delivering anything
	err = process.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM: process exists but belongs to someone else
	return errors.Is(err, syscall.EPERM)
}
