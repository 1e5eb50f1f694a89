package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/pkg/errors"
)

// loggedRouter mounts handler on the dashboard section route behind the
// request ID and request logging middleware, writing log lines to buf
func loggedRouter(buf *bytes.Buffer, handler http.HandlerFunc) http.Handler {
	logger := logging.New(buf, "debug", "json", "test-service", "1.0.0")
	r := chi.NewRouter()
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(logger))
	r.Get("/api/v1/dashboard/{section}", handler)
	r.Get("/health", handler)
	return r
}

func decodeLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
	}
	return entry
}

func TestRequestLogger_DashboardSection(t *testing.T) {
	var buf bytes.Buffer
	handler := loggedRouter(&buf, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"section":"pipelines"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/pipelines?start_date=2024-01-01", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	req.Header.Set(SessionHeader, "tab-7")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	entry := decodeLogLine(t, &buf)
	checks := map[string]any{
		logging.FieldRequestID:  "abc-123",
		logging.FieldHTTPPath:   "/api/v1/dashboard/pipelines",
		logging.FieldRoute:      "/api/v1/dashboard/{section}",
		logging.FieldSession:    "tab-7",
		logging.FieldBytes:      float64(len(`{"section":"pipelines"}`)),
		logging.FieldHTTPStatus: float64(http.StatusOK),
		"level":                 "INFO",
	}
	for field, want := range checks {
		if entry[field] != want {
			t.Errorf("%s: expected %v, got %v", field, want, entry[field])
		}
	}
}

func TestRequestLogger_NoSessionHeader(t *testing.T) {
	var buf bytes.Buffer
	handler := loggedRouter(&buf, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/insights", nil))

	entry := decodeLogLine(t, &buf)
	if _, ok := entry[logging.FieldSession]; ok {
		t.Errorf("Session should be omitted when the header is absent, got %v", entry[logging.FieldSession])
	}
	if entry["level"] != "ERROR" {
		t.Errorf("Expected an upstream failure to log at ERROR, got %v", entry["level"])
	}
	if entry[logging.FieldBytes] != float64(0) {
		t.Errorf("Expected 0 bytes, got %v", entry[logging.FieldBytes])
	}
}

func TestRequestLogger_OutsideChiHasEmptyRoute(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "debug", "json", "test-service", "1.0.0")
	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/presets", nil))

	entry := decodeLogLine(t, &buf)
	if entry[logging.FieldRoute] != "" {
		t.Errorf("Expected empty route, got %v", entry[logging.FieldRoute])
	}
	if entry[logging.FieldRequestID] != "" {
		t.Errorf("Expected empty req_id without the request ID middleware, got %v", entry[logging.FieldRequestID])
	}
}

func TestRequestLogger_HealthPollingStaysOutOfInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, "info", "json", "test-service", "1.0.0")
	r := chi.NewRouter()
	r.Use(RequestLogger(logger))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if buf.Len() != 0 {
		t.Errorf("Expected no info line for a successful health poll, got %q", buf.String())
	}
}

func TestRequestLevel(t *testing.T) {
	tests := []struct {
		path   string
		status int
		want   slog.Level
	}{
		{"/api/v1/dashboard/insights", http.StatusOK, slog.LevelInfo},
		{"/api/v1/dashboard/insights", http.StatusBadRequest, slog.LevelWarn},
		{"/api/v1/dashboard/insights", http.StatusConflict, slog.LevelWarn},
		{"/api/v1/dashboard/insights", http.StatusServiceUnavailable, slog.LevelError},
		{"/api/v1/dashboard/insights", errors.StatusClientClosedRequest, slog.LevelDebug},
		{"/health", http.StatusOK, slog.LevelDebug},
		{"/health", http.StatusServiceUnavailable, slog.LevelError},
	}

	for _, tt := range tests {
		if got := requestLevel(tt.path, tt.status); got != tt.want {
			t.Errorf("requestLevel(%s, %d) = %v, want %v", tt.path, tt.status, got, tt.want)
		}
	}
}
