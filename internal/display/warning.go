package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display shows a formatted warning in yellow.
// Color is dropped when fatih/color detects a non-terminal or NO_COLOR.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	// Add message with 4-space indent if present
	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	// Add files with proper singular/plural and indentation
	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected entry:\n")
		} else {
			b.WriteString("Affected entries:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnScanErrors creates a warning for directory entries the scanner could
// not inspect. The zero Warning is returned when errs is empty.
func WarnScanErrors(errs []error) (Warning, bool) {
	if len(errs) == 0 {
		return Warning{}, false
	}
	files := make([]string, 0, len(errs))
	for _, err := range errs {
		files = append(files, err.Error())
	}
	return Warning{
		Title:      fmt.Sprintf("%d directory entries could not be read", len(errs)),
		Message:    "These entries were left out of the listing",
		Files:      files,
		Suggestion: "Check permissions and dangling symlinks in the scanned directory",
	}, true
}
