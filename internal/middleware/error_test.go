package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
)

func testLogger() *logging.Logger {
	return logging.New(io.Discard, "debug", "json", "test-service", "1.0.0")
}

func TestErrorHandler_Success(t *testing.T) {
	successHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("success"))
	})

	errorHandler := NewErrorHandler(testLogger(), successHandler)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	errorHandler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}

	if w.Body.String() != "success" {
		t.Errorf("Expected body 'success', got '%s'", w.Body.String())
	}
}

func TestErrorHandler_PassesThroughErrorStatus(t *testing.T) {
	errorHandlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	errorHandler := NewErrorHandler(testLogger(), errorHandlerFunc)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	errorHandler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestNewErrorHandler(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	errorHandler := NewErrorHandler(testLogger(), next)

	if errorHandler.next == nil {
		t.Error("Expected next handler to be set")
	}
	if errorHandler.logger == nil {
		t.Error("Expected logger to be set")
	}
}

func TestErrorHandler_PanicRecovery(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	})

	handler := RequestIDMiddleware(Recoverer(testLogger())(panicHandler))

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status %d after panic recovery, got %d", http.StatusInternalServerError, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected content type 'application/json', got '%s'", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body, got error: %v", err)
	}
	if body["code"] != "INTERNAL_ERROR" {
		t.Errorf("Expected code INTERNAL_ERROR, got %s", body["code"])
	}
	if body["error"] == "test panic" {
		t.Error("Panic value must not leak into the response")
	}
}

func TestErrorHandler_PanicAfterHeaderWritten(t *testing.T) {
	panicHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		panic("late panic")
	})

	errorHandler := NewErrorHandler(testLogger(), panicHandler)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	errorHandler.ServeHTTP(w, req)

	if w.Code != http.StatusAccepted {
		t.Errorf("Expected committed status %d to be kept, got %d", http.StatusAccepted, w.Code)
	}
	if w.Body.Len() != 0 {
		t.Errorf("Expected no error body after commit, got %q", w.Body.String())
	}
}
