package display

import (
	"fmt"
	"io"

	"github.com/harrison/rttools/internal/dcm"
	"gopkg.in/yaml.v3"
)

// PlanEntry is the YAML shape of one listed plan.
type PlanEntry struct {
	File        string `yaml:"file"`
	Path        string `yaml:"path"`
	PatientID   string `yaml:"patient_id"`
	PatientName string `yaml:"patient_name"`
	PlanName    string `yaml:"plan_name"`
	PlanLabel   string `yaml:"plan_label"`
}

// WriteYAML writes records as a YAML sequence. No records yields "[]".
func WriteYAML(w io.Writer, records []dcm.Record) error {
	entries := make([]PlanEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, PlanEntry{
			File:        r.Filename,
			Path:        r.Path,
			PatientID:   r.PatientID,
			PatientName: r.PatientName,
			PlanName:    r.PlanName,
			PlanLabel:   r.PlanLabel,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("failed to encode plans as YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to flush YAML output: %w", err)
	}
	return nil
}
