// Package fileutil provides the directory scanning shared by ls_rtplan and dcmcp.
//
// Scanning is deliberately shallow: only the immediate entries of a directory
// are inspected and subdirectories are never descended into.
//
// # Main Components
//
// ScanOptions - Configuration struct for directory scanning:
//   - Prefix: literal basename prefix filter (empty = no filtering)
//   - RegularOnly: skip directories and special files, following symlinks
//   - Sort: none (filesystem order), name, or mtime (newest first)
//
// ScanResult - Results of directory scan:
//   - Files: dir-joined paths of the matched entries
//   - Errors: non-fatal errors for entries that could not be inspected
//
// # Usage Examples
//
// All regular files whose name starts with "RP":
//
//	result, err := fileutil.ScanDirectory("/data/plans", fileutil.ScanOptions{
//	    Prefix:      "RP",
//	    RegularOnly: true,
//	})
//	if err != nil {
//	    return err
//	}
//	for _, path := range result.Files {
//	    fmt.Println(path)
//	}
//
// Newest first:
//
//	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
//	    RegularOnly: true,
//	    Sort:        fileutil.SortModTime,
//	})
//
// # Error Tolerance
//
// Only a root that cannot be opened as a directory is fatal. An entry whose
// metadata cannot be read (for example a dangling symlink) is recorded in
// ScanResult.Errors and scanning continues.
package fileutil
