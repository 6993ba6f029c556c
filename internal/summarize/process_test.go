package summarize

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/amberlink/internal/amber"
	"example.com/amberlink/internal/hostif"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestExpandPatterns(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "x\n1\n")
	b := writeCSV(t, dir, "b.csv", "x\n1\n")
	writeCSV(t, dir, "c.txt", "ignore")

	got := ExpandPatterns([]string{filepath.Join(dir, "*.csv")})
	want := []string{a, b}
	sort.Strings(want)
	assert.Equal(t, want, got)
}

func TestExpandPatternsLiteralPassthrough(t *testing.T) {
	got := ExpandPatterns([]string{"does/not/exist.csv"})
	assert.Equal(t, []string{"does/not/exist.csv"}, got,
		"literal paths pass through so the open failure is reported per file")
}

func TestExpandPatternsDropsEmptyGlob(t *testing.T) {
	got := ExpandPatterns([]string{filepath.Join(t.TempDir(), "*.csv")})
	assert.Empty(t, got)
}

func TestProcessFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "in.csv",
		"Port_Number,MAC_Address,Raw_BER\n1,0x9c63c00358d0,1e-9\n2,0x9c63c00358d1,2e-9\n")

	ifmap := map[string]hostif.Interface{
		"9c:63:c0:03:58:d0": {Name: "enp13s0f0np0", OperState: hostif.StateUp},
	}

	var buf bytes.Buffer
	rows, err := ProcessFile(path, &buf, ifmap)
	require.NoError(t, err)
	assert.Equal(t, 2, rows)

	out := buf.String()
	assert.Contains(t, out, "PORT=1 IF=enp13s0f0np0")
	assert.Contains(t, out, "PORT=2 IF=N/A")
}

func TestProcessFileNoData(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "empty.csv", "Port_Number,Raw_BER\n,\n")

	var buf bytes.Buffer
	rows, err := ProcessFile(path, &buf, nil)
	assert.Zero(t, rows)
	require.Error(t, err)
	assert.True(t, errors.Is(err, amber.ErrNoData))
}

func TestProcessFileMissing(t *testing.T) {
	var buf bytes.Buffer
	_, err := ProcessFile(filepath.Join(t.TempDir(), "missing.csv"), &buf, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, amber.ErrNoData))
}

func TestEnsureInputCreatesTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.csv")

	created, err := EnsureInput(path)
	require.NoError(t, err)
	assert.True(t, created)
	require.FileExists(t, path)

	records, err := amber.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, records, "template carries headers only")

	created, err = EnsureInput(path)
	require.NoError(t, err)
	assert.False(t, created, "existing files are left alone")
}

func TestRunSummaryTemplateBucket(t *testing.T) {
	var rs RunSummary
	rs.Add(FileResult{Path: "fresh.csv", TemplateCreated: true})
	rs.Add(FileResult{Path: "ok.csv", LogPath: "ok.log", Rows: 1})

	assert.Len(t, rs.Templates, 1)
	assert.Len(t, rs.Processed, 1)
	assert.False(t, rs.Failed(), "a created template is not a failure")

	var buf bytes.Buffer
	rs.WriteTo(&buf)
	out := buf.String()
	assert.Contains(t, out, "Created 1 template file(s):")
	assert.Contains(t, out, "fresh.csv (template with headers only)")
}

func TestRunSummaryAcquisitionFailures(t *testing.T) {
	var rs RunSummary
	rs.AddAcquisitionFailure("/dev/mst/mt4129_pciconf0", errors.New("mlxlink: boom"))
	rs.Add(FileResult{Path: "ok.csv", Rows: 1})

	assert.False(t, rs.Failed(), "acquisition failures alone do not fail the run")

	var buf bytes.Buffer
	rs.WriteTo(&buf)
	out := buf.String()
	assert.Contains(t, out, "1 device(s) failed telemetry collection:")
	assert.Contains(t, out, "/dev/mst/mt4129_pciconf0: mlxlink: boom")
}

func TestRunSummaryBuckets(t *testing.T) {
	var rs RunSummary
	rs.Add(FileResult{Path: "ok.csv", LogPath: "ok.log", Rows: 2})
	rs.Add(FileResult{Path: "empty.csv", Err: amber.ErrNoData})
	rs.Add(FileResult{Path: "bad.csv", Err: errors.New("open failed")})
	rs.AddKernelLog("k.log")

	assert.Len(t, rs.Processed, 1)
	assert.Len(t, rs.NoData, 1)
	assert.Len(t, rs.Errors, 1)
	assert.True(t, rs.Failed())

	var buf bytes.Buffer
	rs.WriteTo(&buf)
	out := buf.String()
	assert.Contains(t, out, "PROCESSING SUMMARY")
	assert.Contains(t, out, "ok.csv -> ok.log (2 row(s))")
	assert.Contains(t, out, "empty.csv")
	assert.Contains(t, out, "bad.csv: open failed")
	assert.Contains(t, out, "k.log")
}

func TestRunSummaryNotFailedWithoutErrors(t *testing.T) {
	var rs RunSummary
	rs.Add(FileResult{Path: "ok.csv", Rows: 1})
	rs.Add(FileResult{Path: "empty.csv", Err: amber.ErrNoData})
	assert.False(t, rs.Failed(), "no-data files are not hard failures")
}
