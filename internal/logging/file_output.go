package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileOutput mirrors log output to a timestamped file in a directory
type FileOutput struct {
	dir  string
	file *os.File
	w    io.Writer
}

// OpenFileOutput creates dir if needed and opens dashboard_<timestamp>.log in it.
// Writes go to both the file and console.
func OpenFileOutput(dir string, console io.Writer) (*FileOutput, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	name := filepath.Join(dir, fmt.Sprintf("dashboard_%s.log", time.Now().Format("2006-01-02_15-04-05")))
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	w := io.Writer(f)
	if console != nil {
		w = io.MultiWriter(f, console)
	}
	return &FileOutput{dir: dir, file: f, w: w}, nil
}

// Write implements io.Writer
func (o *FileOutput) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Path returns the path of the open log file
func (o *FileOutput) Path() string {
	return o.file.Name()
}

// Close closes the log file
func (o *FileOutput) Close() error {
	if err := o.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}

// CleanupOldLogs removes .log files older than days from the directory, except the open one.
// It returns the number of files removed.
func (o *FileOutput) CleanupOldLogs(days int) (int, error) {
	if days <= 0 {
		return 0, nil
	}
	entries, err := os.ReadDir(o.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		path := filepath.Join(o.dir, entry.Name())
		if path == o.file.Name() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err == nil {
				removed++
			}
		}
	}
	return removed, nil
}
