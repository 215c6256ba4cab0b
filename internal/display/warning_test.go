package display

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title: "Directory Unreadable",
	}

	w.Display(&buf)

	output := buf.String()
	if !strings.Contains(output, "Warning: Directory Unreadable") {
		t.Errorf("Expected title in output, got %q", output)
	}
	if strings.Contains(output, "Suggestion") {
		t.Error("Suggestion section should be omitted when empty")
	}
}

func TestDisplayWarning_AllSections(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Entries skipped",
		Message:    "Some entries were left out",
		Files:      []string{"a.dcm", "b.dcm"},
		Suggestion: "Fix permissions",
	}

	w.Display(&buf)

	output := buf.String()
	for _, want := range []string{
		"    Some entries were left out\n",
		"    Affected entries:\n",
		"      1. a.dcm\n",
		"      2. b.dcm\n",
		"    Suggestion:\n    Fix permissions\n",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got %q", want, output)
		}
	}
}

func TestDisplayWarning_SingleFile(t *testing.T) {
	var buf bytes.Buffer
	Warning{Title: "t", Files: []string{"only.dcm"}}.Display(&buf)

	if !strings.Contains(buf.String(), "Affected entry:\n") {
		t.Errorf("Expected singular heading, got %q", buf.String())
	}
}

func TestWarnScanErrors(t *testing.T) {
	if _, ok := WarnScanErrors(nil); ok {
		t.Error("WarnScanErrors(nil) should report no warning")
	}

	w, ok := WarnScanErrors([]error{
		errors.New("error accessing dir/a: permission denied"),
		errors.New("error accessing dir/b: no such file or directory"),
	})
	if !ok {
		t.Fatal("WarnScanErrors should report a warning")
	}
	if w.Title != "2 directory entries could not be read" {
		t.Errorf("unexpected title %q", w.Title)
	}
	if len(w.Files) != 2 || !strings.Contains(w.Files[0], "dir/a") {
		t.Errorf("unexpected files %v", w.Files)
	}
}
