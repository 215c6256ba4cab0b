// Package copier copies the DICOM files of one patient between directories.
package copier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/rttools/internal/config"
	"github.com/harrison/rttools/internal/dcm"
	"github.com/harrison/rttools/internal/filelock"
	"github.com/harrison/rttools/internal/fileutil"
	"github.com/harrison/rttools/internal/logger"
)

var (
	// ErrNotDirectory is returned when the input directory is missing or not a directory.
	ErrNotDirectory = errors.New("input directory does not exist or is not a directory")

	// ErrOutputConflict is returned when the output path exists but is not a directory.
	ErrOutputConflict = errors.New("output path exists and is not a directory")
)

// CopyError reports the file whose copy aborted the run.
type CopyError struct {
	Src string
	Dst string
	Err error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy %s to %s: %v", e.Src, e.Dst, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }

// Copier copies files whose PatientID matches a target.
type Copier struct {
	log *logger.ConsoleLogger
}

// New creates a Copier. Copy progress is logged at info level, skipped
// files at debug level and unreadable directory entries at warn level.
// A nil logger is silent.
func New(log *logger.ConsoleLogger) *Copier {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Copier{log: log}
}

// CopyByPatientID copies every regular file directly inside opts.InputDir
// whose decoded PatientID equals opts.PatientID into opts.OutputDir, which is
// created if needed. Existing files of the same name are replaced. Files that
// are not DICOM are skipped.
//
// It returns the number of files copied. The first failed copy aborts the run;
// the count of files copied before it is returned with the error.
func (c *Copier) CopyByPatientID(ctx context.Context, opts config.CopyOptions) (int, error) {
	if err := opts.Validate(); err != nil {
		return 0, err
	}

	info, err := os.Stat(opts.InputDir)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("%w: %s", ErrNotDirectory, opts.InputDir)
	}

	if err := ensureOutputDir(opts.OutputDir); err != nil {
		return 0, err
	}

	scan, err := fileutil.ScanDirectory(opts.InputDir, fileutil.ScanOptions{RegularOnly: true})
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", opts.InputDir, err)
	}
	for _, scanErr := range scan.Errors {
		c.log.LogWarnf("skipping unreadable entry: %v", scanErr)
	}

	copied := 0
	for _, src := range scan.Files {
		if err := ctx.Err(); err != nil {
			return copied, err
		}

		rec, err := dcm.ReadFile(src)
		if err != nil {
			c.log.LogDebugf("skipping %s: %v", src, err)
			continue
		}
		if rec.PatientID != opts.PatientID {
			continue
		}

		dst := filepath.Join(opts.OutputDir, filepath.Base(src))
		c.log.LogInfof("Copying %s to %s", src, dst)
		if err := copyFile(src, dst); err != nil {
			return copied, err
		}
		copied++
	}

	c.log.LogInfof("%d files copied", copied)
	return copied, nil
}

// ensureOutputDir creates dir and its parents, failing when a non-directory
// is in the way.
func ensureOutputDir(dir string) error {
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrOutputConflict, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	// Copying a file onto itself would truncate it; it is already in place.
	if same, err := sameFile(src, dst); err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	} else if same {
		return nil
	}

	if err := filelock.LockAndCopy(src, dst); err != nil {
		return &CopyError{Src: src, Dst: dst, Err: err}
	}
	return nil
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
