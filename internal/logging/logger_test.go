package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to unmarshal log entry: %v", err)
	}
	return logEntry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"invalid", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := ParseLevel(tt.level); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn", FormatJSON, "test-service", "1.0.0")

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level, got %q", buf.String())
	}

	logger.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("expected warn entry, got %q", buf.String())
	}
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", FormatText, "test-service", "1.0.0")

	logger.Info("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") || !strings.Contains(out, "k=v") {
		t.Errorf("expected text handler output, got %q", out)
	}
}

func TestLoggerWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", FormatJSON, "test-service", "1.0.0")

	reqID := "test-req-id-123"
	logger.WithRequestID(reqID).Info("test message")

	logEntry := decodeEntry(t, &buf)
	if logEntry["req_id"] != reqID {
		t.Errorf("Expected request ID %s, got %v", reqID, logEntry["req_id"])
	}
}

func TestLoggerRequest(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", FormatJSON, "test-service", "1.0.0")

	logger.Request(slog.LevelWarn, "req-123", "GET", "/api/v1/dashboard/insights", 200, 150, FieldSession, "tab-1")

	logEntry := decodeEntry(t, &buf)
	if logEntry["msg"] != "HTTP request completed" {
		t.Errorf("Expected message 'HTTP request completed', got %v", logEntry["msg"])
	}
	if logEntry["req_id"] != "req-123" {
		t.Errorf("Expected request ID req-123, got %v", logEntry["req_id"])
	}
	if logEntry["path"] != "/api/v1/dashboard/insights" {
		t.Errorf("Expected dashboard path, got %v", logEntry["path"])
	}
	if logEntry["status"] != float64(200) {
		t.Errorf("Expected status 200, got %v", logEntry["status"])
	}
	if logEntry["latency_ms"] != float64(150) {
		t.Errorf("Expected latency 150, got %v", logEntry["latency_ms"])
	}
	if logEntry["level"] != "WARN" {
		t.Errorf("Expected level WARN, got %v", logEntry["level"])
	}
	if logEntry["session"] != "tab-1" {
		t.Errorf("Expected session tab-1, got %v", logEntry["session"])
	}
}

func TestLoggerWithServiceContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", FormatJSON, "goMetricsDashboard", "1.2.3")

	logger.Startup("starting")

	logEntry := decodeEntry(t, &buf)
	if logEntry["service"] != "goMetricsDashboard" || logEntry["version"] != "1.2.3" {
		t.Errorf("Expected service context, got %v", logEntry)
	}
}

func TestLoggerUpstreamError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "info", FormatJSON, "test-service", "1.0.0")

	logger.WithSection("insights").UpstreamError("section load failed", errors.New("API error: Bad Gateway"), FieldEndpoint, "/pipelines/summary")

	logEntry := decodeEntry(t, &buf)
	if logEntry["msg"] != "upstream: section load failed" {
		t.Errorf("unexpected message %v", logEntry["msg"])
	}
	if logEntry["error"] != "API error: Bad Gateway" {
		t.Errorf("unexpected error field %v", logEntry["error"])
	}
	if logEntry["section"] != "insights" || logEntry["endpoint"] != "/pipelines/summary" {
		t.Errorf("missing context fields: %v", logEntry)
	}
}

func TestLoggerWithNilError(t *testing.T) {
	logger := New(&bytes.Buffer{}, "info", FormatJSON, "s", "v")
	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestLoggerHealthCheck(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", FormatJSON, "test-service", "1.0.0")

	logger.HealthCheck("metrics_api check successful", FieldResponseTime, 25)

	logEntry := decodeEntry(t, &buf)
	if !strings.Contains(logEntry["msg"].(string), "metrics_api check successful") {
		t.Errorf("Expected message containing 'healthcheck: metrics_api check successful', got %v", logEntry["msg"])
	}
	if logEntry["response_time_ms"] != float64(25) {
		t.Errorf("Expected response time 25, got %v", logEntry["response_time_ms"])
	}
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	out, err := OpenFileOutput(dir, &console)
	if err != nil {
		t.Fatalf("OpenFileOutput() error = %v", err)
	}

	logger := New(out, "info", FormatJSON, "s", "v")
	logger.Store("preset saved", FieldPreset, "q1")

	if err := out.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content, err := os.ReadFile(out.Path())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.Contains(string(content), "store: preset saved") {
		t.Errorf("file missing log entry: %q", content)
	}
	if !strings.Contains(console.String(), "store: preset saved") {
		t.Errorf("console missing log entry: %q", console.String())
	}
}

func TestFileOutputCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "dashboard_old.log")
	keep := filepath.Join(dir, "notes.txt")
	for _, p := range []string{old, keep} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().AddDate(0, 0, -10)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(keep, past, past); err != nil {
		t.Fatal(err)
	}

	out, err := OpenFileOutput(dir, nil)
	if err != nil {
		t.Fatalf("OpenFileOutput() error = %v", err)
	}
	defer out.Close()

	removed, err := out.CleanupOldLogs(7)
	if err != nil {
		t.Fatalf("CleanupOldLogs() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old log file should be removed")
	}
	if _, err := os.Stat(keep); err != nil {
		t.Error("non-log file should be kept")
	}
	if _, err := os.Stat(out.Path()); err != nil {
		t.Error("current log file should be kept")
	}
}
