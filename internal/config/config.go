package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/harrison/rttools/internal/fileutil"
)

// DefaultPathWidth is the width of the file path column in ls_rtplan's table.
const DefaultPathWidth = 40

// MinPathWidth leaves room for the "..." marker plus one character.
const MinPathWidth = 4

// Output formats for ls_rtplan
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

// ListOptions configures an ls_rtplan run
type ListOptions struct {
	// Dir is the directory to scan (non-recursive)
	Dir string `flag:"--dir" validate:"required"`

	// Prefix keeps only files whose name starts with it
	Prefix string `flag:"--prefix"`

	// Limit caps the number of listed plans (<= 0 = unbounded)
	Limit int `flag:"--limit"`

	// Sort is the listing order: none, name or mtime
	Sort fileutil.SortOrder `flag:"--sort" validate:"oneof=none name mtime"`

	// Output is table or yaml
	Output string `flag:"--output" validate:"oneof=table yaml"`

	// PathWidth is the width of the file path column
	PathWidth int `flag:"--width" validate:"min=4"`

	// Verbose logs skipped files to stderr
	Verbose bool `flag:"--verbose"`
}

// CopyOptions configures a dcmcp run
type CopyOptions struct {
	// InputDir is scanned non-recursively for DICOM files
	InputDir string `flag:"--input" validate:"required"`

	// OutputDir receives the matching files; created if missing
	OutputDir string `flag:"--output" validate:"required"`

	// PatientID is compared for exact, case-sensitive equality
	PatientID string `flag:"--id" validate:"required"`

	// Verbose prints one line per copied file
	Verbose bool `flag:"--verbose"`
}

// DefaultListOptions returns the ls_rtplan defaults
func DefaultListOptions() *ListOptions {
	return &ListOptions{
		Dir:       ".",
		Prefix:    "",
		Limit:     0,
		Sort:      fileutil.SortNone,
		Output:    OutputTable,
		PathWidth: DefaultPathWidth,
	}
}

// Normalize fills empty fields with defaults and lowercases enum values.
func (o *ListOptions) Normalize() {
	if strings.TrimSpace(o.Dir) == "" {
		o.Dir = "."
	}
	if o.Sort == "" {
		o.Sort = fileutil.SortNone
	}
	o.Sort = fileutil.SortOrder(strings.ToLower(strings.TrimSpace(string(o.Sort))))
	if o.Output == "" {
		o.Output = OutputTable
	}
	o.Output = strings.ToLower(strings.TrimSpace(o.Output))
	if o.PathWidth == 0 {
		o.PathWidth = DefaultPathWidth
	}
}

// Unbounded reports whether the listing has no row limit.
func (o *ListOptions) Unbounded() bool {
	return o.Limit <= 0
}

// Validate validates the ls_rtplan options
func (o *ListOptions) Validate() error {
	return validateStruct(o)
}

// Validate validates the dcmcp options.
// PatientID is deliberately not trimmed: matching is exact.
func (o *CopyOptions) Validate() error {
	return validateStruct(o)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their command-line flag
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("flag"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, formatFieldError(e))
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s, got %q", field, strings.ReplaceAll(e.Param(), " ", ", "), e.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", field, e.Param(), e.Value())
	default:
		return field + " is invalid"
	}
}
