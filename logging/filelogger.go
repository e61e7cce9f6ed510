// Package logging persists run reports to disk, one directory per run.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	RunDirectoryPrefix = "testrun-" // Standardized prefix for run directories
	ReportFilename     = "report.txt"
	SummaryFilename    = "summary.txt"
)

// FileLogger handles writing run reports to files
type FileLogger struct {
	baseDir string     // Base directory for logs
	mu      sync.Mutex // Protects concurrent file operations
}

// NewFileLogger creates a logger rooted at baseDir, creating it if needed.
func NewFileLogger(baseDir string) (*FileLogger, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("base directory is required")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &FileLogger{baseDir: baseDir}, nil
}

// BaseDir returns the root log directory.
func (l *FileLogger) BaseDir() string {
	return l.baseDir
}

// RunDir returns the directory holding the artifacts of one run.
func (l *FileLogger) RunDir(runID string) string {
	return filepath.Join(l.baseDir, RunDirectoryPrefix+runID)
}

// SaveRun writes the raw wire report and a one-line summary for a run.
func (l *FileLogger) SaveRun(runID string, rawReport string, summary string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	dir := l.RunDir(runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ReportFilename), []byte(rawReport), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, SummaryFilename), []byte(summary+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	// Refresh the "latest" symlink so operators can tail a stable path.
	latest := filepath.Join(l.baseDir, "latest")
	_ = os.Remove(latest)
	if err := os.Symlink(RunDirectoryPrefix+runID, latest); err != nil {
		// Symlinks may be unsupported on the filesystem; the run data
		// itself is intact.
		return nil
	}
	return nil
}
