package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileLoggerCreatesBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "logs")
	l, err := NewFileLogger(base)
	require.NoError(t, err)
	assert.Equal(t, base, l.BaseDir())
	assert.DirExists(t, base)
}

func TestNewFileLoggerRequiresBaseDir(t *testing.T) {
	_, err := NewFileLogger("")
	require.Error(t, err)
}

func TestSaveRunWritesReportAndSummary(t *testing.T) {
	l, err := NewFileLogger(t.TempDir())
	require.NoError(t, err)

	raw := "T,   0,PASS,     3,@ROOT\n\nDONE"
	require.NoError(t, l.SaveRun("run-1", raw, "run run-1: PASS"))

	report, err := os.ReadFile(filepath.Join(l.RunDir("run-1"), ReportFilename))
	require.NoError(t, err)
	assert.Equal(t, raw, string(report))

	summary, err := os.ReadFile(filepath.Join(l.RunDir("run-1"), SummaryFilename))
	require.NoError(t, err)
	assert.Equal(t, "run run-1: PASS\n", string(summary))
}

func TestSaveRunRefreshesLatest(t *testing.T) {
	l, err := NewFileLogger(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, l.SaveRun("run-1", "DONE", "first"))
	require.NoError(t, l.SaveRun("run-2", "DONE", "second"))

	target, err := os.Readlink(filepath.Join(l.BaseDir(), "latest"))
	if err != nil {
		t.Skip("symlinks unsupported on this filesystem")
	}
	assert.Equal(t, RunDirectoryPrefix+"run-2", target)
}
