package dcm

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/rttools/internal/dcm/dcmtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFileRTPlan(t *testing.T) {
	dir := t.TempDir()
	path := dcmtest.WriteFile(t, dir, "plan.dcm",
		dcmtest.RTPlan("P001", "Doe^Jane", "PROSTATE", "Prostate 78Gy")...)

	rec, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, rec.Path)
	assert.Equal(t, "plan.dcm", rec.Filename)
	assert.Equal(t, "P001", rec.PatientID)
	assert.Equal(t, "Doe^Jane", rec.PatientName)
	assert.Equal(t, "PROSTATE", rec.PlanLabel)
	assert.Equal(t, "Prostate 78Gy", rec.PlanName)
	assert.Equal(t, RTPlanModality, rec.Modality)
	assert.Equal(t, RTPlanStorageUID, rec.SOPClassUID)
	assert.True(t, rec.IsRTPlan())
}

func TestReadFileTrimsPadding(t *testing.T) {
	dir := t.TempDir()
	// Odd-length values are padded with a space on disk.
	path := dcmtest.WriteFile(t, dir, "odd.dcm",
		dcmtest.RTPlan("P01", "Roe^Ann", "LUNG", "Lung SBRT")...)

	rec, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "P01", rec.PatientID)
	assert.Equal(t, "Roe^Ann", rec.PatientName)
	assert.Equal(t, "Lung SBRT", rec.PlanName)
}

func TestReadFileImageIsNotRTPlan(t *testing.T) {
	dir := t.TempDir()
	path := dcmtest.WriteFile(t, dir, "ct.dcm", dcmtest.CTImage("P002", "Doe^John")...)

	rec, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "P002", rec.PatientID)
	assert.Equal(t, "CT", rec.Modality)
	assert.Empty(t, rec.PlanLabel)
	assert.Empty(t, rec.PlanName)
	assert.False(t, rec.IsRTPlan())
}

func TestReadFileMissingPatientID(t *testing.T) {
	dir := t.TempDir()
	path := dcmtest.WriteFile(t, dir, "anon.dcm", dcmtest.Modality("RTPLAN"))

	rec, err := ReadFile(path)
	require.NoError(t, err)

	assert.Empty(t, rec.PatientID)
	assert.Empty(t, rec.PatientName)
	assert.True(t, rec.IsRTPlan())
}

func TestReadFileNotDICOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("treatment notes, not a DICOM file\n"), 0o644))

	rec, err := ReadFile(path)
	assert.Nil(t, rec)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, path, decodeErr.Path)
	assert.Contains(t, err.Error(), path)
}

func TestReadFileTruncatedBody(t *testing.T) {
	// The decoder reports read failures through the standard logger
	prev := log.Writer()
	log.SetOutput(io.Discard)
	t.Cleanup(func() { log.SetOutput(prev) })

	path := dcmtest.WriteTruncatedFile(t, t.TempDir(), "RP.corrupt.dcm", 3,
		dcmtest.RTPlan("P001", "Doe^Jane", "PROSTATE", "Prostate 78Gy")...)

	rec, err := ReadFile(path)
	assert.Nil(t, rec)
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, path, decodeErr.Path)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.dcm"))
	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestIsRTPlan(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want bool
	}{
		{name: "modality", rec: Record{Modality: "RTPLAN"}, want: true},
		{name: "sop class only", rec: Record{SOPClassUID: RTPlanStorageUID}, want: true},
		{name: "image", rec: Record{Modality: "CT", SOPClassUID: "1.2.840.10008.5.1.4.1.1.2"}, want: false},
		{name: "lowercase modality", rec: Record{Modality: "rtplan"}, want: false},
		{name: "empty", rec: Record{}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rec.IsRTPlan())
		})
	}
}

func TestTrimPadding(t *testing.T) {
	assert.Equal(t, "1.2.3", trimPadding("1.2.3\x00"))
	assert.Equal(t, "ABC", trimPadding("ABC "))
	assert.Equal(t, " lead", trimPadding(" lead  "))
	assert.Equal(t, "", trimPadding(""))
}
