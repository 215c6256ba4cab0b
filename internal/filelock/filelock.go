// Package filelock provides atomic file copies guarded by a per-destination
// file lock.
//
// A destination is never observed half-written: the copy lands through a
// rename. The lock serializes copies that overlap while its lock file exists.
// Because the lock file is removed after each copy, a writer still waiting on
// the removed file may overlap with one that starts afterwards; the rename
// keeps the destination whole in that case too.
package filelock

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// LockSuffix is appended to a destination path to form its lock file.
const LockSuffix = ".lock"

// FileLock wraps a flock file lock for coordinating access to files.
type FileLock struct {
	flock *flock.Flock
	path  string
}

// NewFileLock creates a new file lock for the given path.
// The lock file will be created at the specified path.
func NewFileLock(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock acquires an exclusive lock on the file, blocking until the lock is available.
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", fl.path, err)
	}
	return nil
}

// Unlock releases the lock.
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", fl.path, err)
	}
	return nil
}

// AtomicCopy copies src to dst through a temp file in dst's directory and a
// final rename, replacing any existing dst. The source's permission bits and
// modification time are carried over.
//
// If the operation fails at any point, the original dst (if any) is unchanged
// and the temp file is removed.
func AtomicCopy(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	dir := filepath.Dir(dst)
	tempPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(dst), uuid.NewString()))
	tempFile, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	// Ensure temp file is cleaned up on error
	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := io.Copy(tempFile, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Chtimes(tempPath, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set modification time: %w", err)
	}

	// On Unix systems, rename is atomic within the same filesystem
	if err := os.Rename(tempPath, dst); err != nil {
		os.Remove(tempPath)
		tempFile = nil
		return fmt.Errorf("failed to rename temp file to %s: %w", dst, err)
	}

	// Success - prevent cleanup of temp file since it's now renamed
	tempFile = nil
	return nil
}

// LockAndCopy holds an exclusive lock on dst+LockSuffix while performing
// AtomicCopy. The lock file is removed before the lock is released so no
// lock files are left next to the copies.
func LockAndCopy(src, dst string) error {
	lockPath := dst + LockSuffix
	lock := NewFileLock(lockPath)

	if err := lock.Lock(); err != nil {
		return err
	}
	defer func() {
		os.Remove(lockPath)
		lock.Unlock()
	}()

	return AtomicCopy(src, dst)
}
