package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrNotDirectory is returned when the scan root exists but is not a directory.
var ErrNotDirectory = errors.New("path is not a directory")

// SortOrder selects the order of ScanResult.Files.
type SortOrder string

const (
	// SortNone keeps the order in which the filesystem enumerates entries.
	SortNone SortOrder = "none"
	// SortName orders entries lexically by basename.
	SortName SortOrder = "name"
	// SortModTime orders entries newest first.
	SortModTime SortOrder = "mtime"
)

// SortOrders lists the accepted SortOrder values.
var SortOrders = []SortOrder{SortNone, SortName, SortModTime}

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Prefix keeps only entries whose basename starts with it (literal match, empty = all)
	Prefix string
	// RegularOnly skips directories and special files; symlinks are followed
	RegularOnly bool
	// Sort selects the output order (empty = SortNone)
	Sort SortOrder
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains dir-joined paths of all matched entries
	Files []string
	// Errors contains non-fatal errors for entries that could not be inspected
	Errors []error
}

type entry struct {
	path    string
	name    string
	modTime time.Time
}

// ScanDirectory lists the immediate entries of dir that match opts.
// Subdirectories are never descended into.
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	// Validate directory exists
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory: %w", err)
	}
	defer f.Close()

	// File.ReadDir keeps directory order; os.ReadDir would sort by name.
	dirEntries, err := f.ReadDir(-1)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	result := &ScanResult{
		Files:  make([]string, 0, len(dirEntries)),
		Errors: make([]error, 0),
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		name := d.Name()
		if !strings.HasPrefix(name, opts.Prefix) {
			continue
		}

		path := filepath.Join(dir, name)
		fi, err := entryInfo(path, d)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			continue
		}

		if opts.RegularOnly && !fi.Mode().IsRegular() {
			continue
		}

		entries = append(entries, entry{path: path, name: name, modTime: fi.ModTime()})
	}

	sortEntries(entries, opts.Sort)

	for _, e := range entries {
		result.Files = append(result.Files, e.path)
	}
	return result, nil
}

// entryInfo returns file info for d, following symlinks.
func entryInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		return os.Stat(path)
	}
	return d.Info()
}

func sortEntries(entries []entry, order SortOrder) {
	switch order {
	case SortName:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].name < entries[j].name })
	case SortModTime:
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].modTime.After(entries[j].modTime) })
	}
}

// ParseSortOrder converts a flag value into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	normalized := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	if normalized == "" {
		return SortNone, nil
	}
	for _, o := range SortOrders {
		if o == normalized {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid sort order %q, must be one of: none, name, mtime", s)
}
