package rtplan

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/harrison/rttools/internal/config"
	"github.com/harrison/rttools/internal/dcm"
	"github.com/harrison/rttools/internal/dcm/dcmtest"
	"github.com/harrison/rttools/internal/fileutil"
	"github.com/harrison/rttools/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupPlanDir creates:
//
//	RP.A.dcm     RTPLAN P001
//	RP.B.dcm     RTPLAN P002
//	RP.C.dcm     RTPLAN P003
//	plan_D.dcm   RTPLAN P004
//	CT.1.dcm     CT image P001
//	RP.notes.txt not DICOM
//	RP.sub/      directory with an RTPLAN inside
func setupPlanDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	dcmtest.WriteFile(t, dir, "RP.A.dcm", dcmtest.RTPlan("P001", "Doe^Jane", "PRO1", "Prostate")...)
	dcmtest.WriteFile(t, dir, "RP.B.dcm", dcmtest.RTPlan("P002", "Roe^Rick", "BRS1", "Breast L")...)
	dcmtest.WriteFile(t, dir, "RP.C.dcm", dcmtest.RTPlan("P003", "Poe^Edgar", "HN01", "Head Neck")...)
	dcmtest.WriteFile(t, dir, "plan_D.dcm", dcmtest.RTPlan("P004", "Moe^Ann", "LNG1", "Lung")...)
	dcmtest.WriteFile(t, dir, "CT.1.dcm", dcmtest.CTImage("P001", "Doe^Jane")...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "RP.notes.txt"), []byte("not dicom"), 0o644))

	sub := filepath.Join(dir, "RP.sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	dcmtest.WriteFile(t, sub, "RP.nested.dcm", dcmtest.RTPlan("P009", "Nested^Nick", "NST1", "Nested")...)

	return dir
}

func filenames(records []dcm.Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Filename)
	}
	sort.Strings(names)
	return names
}

func listOpts(dir string) config.ListOptions {
	opts := config.DefaultListOptions()
	opts.Dir = dir
	return *opts
}

func TestListAllPlans(t *testing.T) {
	dir := setupPlanDir(t)

	result, err := NewLister(nil).List(context.Background(), listOpts(dir))
	require.NoError(t, err)

	assert.Equal(t, []string{"RP.A.dcm", "RP.B.dcm", "RP.C.dcm", "plan_D.dcm"}, filenames(result.Records))
	assert.Empty(t, result.ScanErrors)
}

func TestListExtractsFields(t *testing.T) {
	dir := setupPlanDir(t)
	opts := listOpts(dir)
	opts.Prefix = "RP.A"

	result, err := NewLister(nil).List(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "RP.A.dcm", rec.Filename)
	assert.Equal(t, filepath.Join(dir, "RP.A.dcm"), rec.Path)
	assert.Equal(t, "P001", rec.PatientID)
	assert.Equal(t, "Doe^Jane", rec.PatientName)
	assert.Equal(t, "PRO1", rec.PlanLabel)
	assert.Equal(t, "Prostate", rec.PlanName)
}

func TestListPrefix(t *testing.T) {
	dir := setupPlanDir(t)

	tests := []struct {
		prefix string
		want   []string
	}{
		{prefix: "", want: []string{"RP.A.dcm", "RP.B.dcm", "RP.C.dcm", "plan_D.dcm"}},
		{prefix: "RP.", want: []string{"RP.A.dcm", "RP.B.dcm", "RP.C.dcm"}},
		{prefix: "plan_", want: []string{"plan_D.dcm"}},
		{prefix: "CT.", want: []string{}},
		{prefix: "rp.", want: []string{}},
	}

	for _, tt := range tests {
		t.Run("prefix="+tt.prefix, func(t *testing.T) {
			opts := listOpts(dir)
			opts.Prefix = tt.prefix

			result, err := NewLister(nil).List(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, filenames(result.Records))
		})
	}
}

func TestListLimit(t *testing.T) {
	dir := setupPlanDir(t)

	tests := []struct {
		limit   int
		wantLen int
	}{
		{limit: -1, wantLen: 4},
		{limit: 0, wantLen: 4},
		{limit: 1, wantLen: 1},
		{limit: 3, wantLen: 3},
		{limit: 10, wantLen: 4},
	}

	for _, tt := range tests {
		opts := listOpts(dir)
		opts.Limit = tt.limit

		result, err := NewLister(nil).List(context.Background(), opts)
		require.NoError(t, err)
		assert.Len(t, result.Records, tt.wantLen, "limit %d", tt.limit)
	}
}

func TestListLimitCountsPlansNotFiles(t *testing.T) {
	dir := setupPlanDir(t)
	opts := listOpts(dir)
	opts.Sort = fileutil.SortName
	opts.Limit = 2

	// Name order starts with CT.1.dcm, which is skipped and must not use up the limit.
	result, err := NewLister(nil).List(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "RP.A.dcm", result.Records[0].Filename)
	assert.Equal(t, "RP.B.dcm", result.Records[1].Filename)
}

func TestListEmptyDirectory(t *testing.T) {
	result, err := NewLister(nil).List(context.Background(), listOpts(t.TempDir()))
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestListNoPlans(t *testing.T) {
	dir := t.TempDir()
	dcmtest.WriteFile(t, dir, "CT.1.dcm", dcmtest.CTImage("P001", "Doe^Jane")...)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# plans"), 0o644))

	result, err := NewLister(nil).List(context.Background(), listOpts(dir))
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestListNotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.dcm")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	for _, path := range []string{file, filepath.Join(dir, "missing")} {
		_, err := NewLister(nil).List(context.Background(), listOpts(path))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotDirectory), "got %v", err)
		assert.Contains(t, err.Error(), path)
	}
}

func TestListCancelledContext(t *testing.T) {
	dir := setupPlanDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLister(nil).List(ctx, listOpts(dir))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestListVerboseLogsSkips(t *testing.T) {
	dir := setupPlanDir(t)
	buf := &bytes.Buffer{}
	lister := NewLister(logger.NewConsoleLogger(buf, "debug"))

	_, err := lister.List(context.Background(), listOpts(dir))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "RP.notes.txt")
	assert.Contains(t, output, `modality "CT" is not RTPLAN`)
	assert.Contains(t, output, "found 4 RT plans")
}
