package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/rttools/internal/dcm"
	"github.com/mattn/go-runewidth"
)

// TruncationMarker prefixes a file name shortened to fit its column.
const TruncationMarker = "..."

// Minimum column widths of the plan table
const (
	minPatientIDWidth   = 15
	minPatientNameWidth = 25
	minPlanNameWidth    = 25
	minPlanLabelWidth   = 25
)

var columnHeaders = [...]string{"File path", "patient ID", "patient name", "plan name", "plan label"}

// TableFormatter renders plan records as a fixed-width text table:
//
//	-------------------------------------------------------------
//	| File path        | patient ID | patient name | ... |
//	-------------------------------------------------------------
//	| RP.1.2.3.dcm     | P001       | Doe^Jane     | ... |
//
// The path column has a fixed width; the other columns grow to fit their
// longest value.
type TableFormatter struct {
	widths [len(columnHeaders)]int
	styled bool
}

// NewTableFormatter creates a formatter whose path column is pathWidth cells wide.
// When styled is true the header row is printed in bold.
func NewTableFormatter(pathWidth int, styled bool) *TableFormatter {
	return &TableFormatter{
		widths: [len(columnHeaders)]int{
			pathWidth,
			minPatientIDWidth,
			minPatientNameWidth,
			minPlanNameWidth,
			minPlanLabelWidth,
		},
		styled: styled,
	}
}

// Fit widens the metadata columns to the longest value in records.
func (f *TableFormatter) Fit(records []dcm.Record) {
	for _, r := range records {
		for i, v := range metadataCells(r) {
			if w := runewidth.StringWidth(v); w > f.widths[i+1] {
				f.widths[i+1] = w
			}
		}
	}
}

// Rule returns the horizontal rule, as wide as a row.
func (f *TableFormatter) Rule() string {
	width := 1 // closing "|"
	for _, w := range f.widths {
		width += w + 3 // "| " + cell + " "
	}
	return strings.Repeat("-", width)
}

// Header returns the rule, the column titles and a second rule.
func (f *TableFormatter) Header() string {
	titles := f.row(columnHeaders[:])
	if f.styled {
		bold := color.New(color.Bold)
		bold.EnableColor()
		titles = bold.Sprint(titles)
	}
	rule := f.Rule()
	return rule + "\n" + titles + "\n" + rule
}

// Row formats a single record.
func (f *TableFormatter) Row(r dcm.Record) string {
	cells := append([]string{TruncatePath(r.Filename, f.widths[0])}, metadataCells(r)...)
	return f.row(cells)
}

func (f *TableFormatter) row(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString("| ")
		b.WriteString(runewidth.FillRight(cell, f.widths[i]))
		b.WriteString(" ")
	}
	b.WriteString("|")
	return b.String()
}

func metadataCells(r dcm.Record) []string {
	return []string{r.PatientID, r.PatientName, r.PlanName, r.PlanLabel}
}

// WriteTable writes the complete table for records: header, one row per
// record, closing rule. With no records only the header and rule are written.
func WriteTable(w io.Writer, records []dcm.Record, pathWidth int, styled bool) error {
	f := NewTableFormatter(pathWidth, styled)
	f.Fit(records)

	var b strings.Builder
	b.WriteString(f.Header())
	b.WriteString("\n")
	for _, r := range records {
		b.WriteString(f.Row(r))
		b.WriteString("\n")
	}
	b.WriteString(f.Rule())
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

// TruncatePath shortens name to at most width terminal cells by replacing its
// beginning with TruncationMarker, keeping the tail of the name.
// Names that already fit are returned unchanged.
func TruncatePath(name string, width int) string {
	if runewidth.StringWidth(name) <= width {
		return name
	}

	budget := width - runewidth.StringWidth(TruncationMarker)
	if budget <= 0 {
		return runewidth.Truncate(TruncationMarker, width, "")
	}

	runes := []rune(name)
	used := 0
	start := len(runes)
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > budget {
			break
		}
		used += w
		start--
	}
	return TruncationMarker + string(runes[start:])
}
