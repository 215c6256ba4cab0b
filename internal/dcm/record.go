// Package dcm decodes the handful of DICOM attributes the radiotherapy tools
// care about into a flat Record.
package dcm

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// RTPlanModality is the Modality (0008,0060) value of an RT Plan object.
const RTPlanModality = "RTPLAN"

// RTPlanStorageUID is the SOP Class UID of RT Plan Storage.
const RTPlanStorageUID = "1.2.840.10008.5.1.4.1.1.481.5"

// RT Plan module attributes (300A,0002) and (300A,0003).
var (
	RTPlanLabelTag = tag.Tag{Group: 0x300A, Element: 0x0002}
	RTPlanNameTag  = tag.Tag{Group: 0x300A, Element: 0x0003}
)

// Record holds the attributes read from one DICOM file.
// Missing attributes are left empty.
type Record struct {
	Path        string
	Filename    string
	PatientID   string
	PatientName string
	PlanName    string
	PlanLabel   string
	Modality    string
	SOPClassUID string
}

// IsRTPlan reports whether the record describes an RT Plan object.
func (r *Record) IsRTPlan() bool {
	return r.Modality == RTPlanModality || r.SOPClassUID == RTPlanStorageUID
}

// DecodeError is returned when a file cannot be parsed as DICOM.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s as DICOM: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ReadFile parses the DICOM file at path and extracts its Record.
// Pixel data is skipped.
func ReadFile(path string) (*Record, error) {
	ds, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return fromDataset(path, &ds), nil
}

func fromDataset(path string, ds *dicom.Dataset) *Record {
	return &Record{
		Path:        path,
		Filename:    filepath.Base(path),
		PatientID:   stringValue(ds, tag.PatientID),
		PatientName: stringValue(ds, tag.PatientName),
		PlanName:    stringValue(ds, RTPlanNameTag),
		PlanLabel:   stringValue(ds, RTPlanLabelTag),
		Modality:    stringValue(ds, tag.Modality),
		SOPClassUID: sopClassUID(ds),
	}
}

// sopClassUID prefers the data set's SOP Class UID and falls back to the
// media storage UID from the file meta header.
func sopClassUID(ds *dicom.Dataset) string {
	if uid := stringValue(ds, tag.SOPClassUID); uid != "" {
		return uid
	}
	return stringValue(ds, tag.MediaStorageSOPClassUID)
}

// stringValue returns the element's string values joined with the DICOM
// multi-value separator, or "" when the element is absent or not textual.
func stringValue(ds *dicom.Dataset, t tag.Tag) string {
	elem, err := ds.FindElementByTag(t)
	if err != nil || elem == nil || elem.Value == nil {
		return ""
	}
	values, ok := elem.Value.GetValue().([]string)
	if !ok {
		return ""
	}
	trimmed := make([]string, 0, len(values))
	for _, v := range values {
		trimmed = append(trimmed, trimPadding(v))
	}
	return trimPadding(strings.Join(trimmed, `\`))
}

// trimPadding strips the space and NUL padding DICOM adds to odd-length values.
func trimPadding(s string) string {
	return strings.TrimRight(s, " \x00")
}
