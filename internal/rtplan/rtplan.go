// Package rtplan lists the RT Plan objects found in a directory.
package rtplan

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/harrison/rttools/internal/config"
	"github.com/harrison/rttools/internal/dcm"
	"github.com/harrison/rttools/internal/fileutil"
	"github.com/harrison/rttools/internal/logger"
)

// ErrNotDirectory is returned when the listing directory is missing or not a directory.
var ErrNotDirectory = errors.New("input path does not exist or is not a directory")

// Result is the outcome of a listing.
type Result struct {
	Records []dcm.Record
	// ScanErrors are entries the scanner could not inspect.
	ScanErrors []error
}

// Lister scans directories for RT Plans.
type Lister struct {
	log *logger.ConsoleLogger
}

// NewLister creates a Lister. A nil logger discards skip messages.
func NewLister(log *logger.ConsoleLogger) *Lister {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Lister{log: log}
}

// List decodes the files of opts.Dir whose name starts with opts.Prefix and
// returns those that are RT Plans, in scan order, stopping once opts.Limit
// plans have been collected (opts.Limit <= 0 = all).
// Files that are not DICOM or not RT Plans are skipped.
func (l *Lister) List(ctx context.Context, opts config.ListOptions) (*Result, error) {
	info, err := os.Stat(opts.Dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, opts.Dir)
	}

	scan, err := fileutil.ScanDirectory(opts.Dir, fileutil.ScanOptions{
		Prefix:      opts.Prefix,
		RegularOnly: true,
		Sort:        opts.Sort,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", opts.Dir, err)
	}

	result := &Result{
		Records:    make([]dcm.Record, 0),
		ScanErrors: scan.Errors,
	}

	for _, path := range scan.Files {
		if !opts.Unbounded() && len(result.Records) >= opts.Limit {
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := dcm.ReadFile(path)
		if err != nil {
			l.log.LogDebugf("skipping %s: %v", path, err)
			continue
		}
		if !rec.IsRTPlan() {
			l.log.LogDebugf("skipping %s: modality %q is not %s", path, rec.Modality, dcm.RTPlanModality)
			continue
		}

		result.Records = append(result.Records, *rec)
	}

	l.log.LogDebugf("found %d RT plans in %s", len(result.Records), opts.Dir)
	return result, nil
}
