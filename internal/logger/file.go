package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileLogger writes scan diagnostics to a per-run log file under a log
// directory and maintains a latest.log symlink pointing to the most recent
// run. It is thread-safe and implements the trace sink interface, so a
// Scanner can stream every decision record to disk.
type FileLogger struct {
	logDir  string
	runFile string
	file    *os.File
	mu      sync.Mutex
}

// NewFileLogger creates a FileLogger writing to logDir/scan-<runID>.log.
// The directory is created if it does not exist.
func NewFileLogger(logDir, runID string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("scan-%s.log", runID))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("remove old symlink: %w", err)
		}
	}
	// Symlinks are unsupported on some filesystems; the run log itself
	// still works without latest.log.
	_ = os.Symlink(filepath.Base(runFile), symlinkPath)

	return &FileLogger{
		logDir:  logDir,
		runFile: runFile,
		file:    file,
	}, nil
}

// Path returns the path of the current run log file.
func (fl *FileLogger) Path() string {
	return fl.runFile
}

// Trace writes one decision record.
// Format: "[HH:MM:SS] [component] message".
func (fl *FileLogger) Trace(component, message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return
	}
	fmt.Fprintf(fl.file, "[%s] [%s] %s\n", timestamp(), component, message)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.file == nil {
		return nil
	}
	err := fl.file.Close()
	fl.file = nil
	return err
}
