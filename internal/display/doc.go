// Package display renders ls_rtplan output and user-facing warnings.
//
// # Plan Table
//
// WriteTable prints records between dashed rules, one row per plan:
//
//	display.WriteTable(os.Stdout, records, 40, isatty.IsTerminal(os.Stdout.Fd()))
//
// The file path column has a fixed width; names that do not fit are shown as
// "..." followed by the end of the name so the column stays exactly that wide.
// Widths are measured in terminal cells with go-runewidth. The patient and
// plan columns start at their minimum width and grow to the longest value.
//
// # YAML
//
// WriteYAML emits the same records as a YAML sequence for scripting.
//
// # Warnings
//
//	if w, ok := display.WarnScanErrors(result.ScanErrors); ok {
//	    w.Display(os.Stderr)
//	}
//
// All functions accept io.Writer interfaces for testability.
package display
