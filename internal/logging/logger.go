// Package logging provides structured logging functionality using log/slog
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with additional application-specific functionality
type Logger struct {
	*slog.Logger
	service string
	version string
}

// NewStructuredLogger creates a new structured logger with JSON output on stdout
func NewStructuredLogger(level string, service, version string) *Logger {
	return New(os.Stdout, level, FormatJSON, service, version)
}

// New creates a logger writing to w in the given format ("json" or "text")
func New(w io.Writer, level, format, service, version string) *Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(format, FormatText) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{
		Logger:  slog.New(handler),
		service: service,
		version: version,
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) with(args ...any) *Logger {
	return &Logger{
		Logger:  l.Logger.With(args...),
		service: l.service,
		version: l.version,
	}
}

// WithRequestID adds request ID to the logger
func (l *Logger) WithRequestID(reqID string) *Logger {
	return l.with(slog.String(FieldRequestID, reqID))
}

// WithHTTPRequest adds HTTP request context to the logger
func (l *Logger) WithHTTPRequest(method, path string, statusCode int, latencyMs int64) *Logger {
	return l.with(
		slog.String(FieldHTTPMethod, method),
		slog.String(FieldHTTPPath, path),
		slog.Int(FieldHTTPStatus, statusCode),
		slog.Int64(FieldLatencyMs, latencyMs),
	)
}

// WithError adds error context to the logger
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with(slog.String(FieldError, err.Error()))
}

// WithSection scopes the logger to a dashboard section
func (l *Logger) WithSection(section string) *Logger {
	return l.with(slog.String(FieldSection, section))
}

// WithServiceContext adds service context to the logger
func (l *Logger) WithServiceContext() *Logger {
	return l.with(
		slog.String(FieldService, l.service),
		slog.String(FieldVersion, l.version),
	)
}

// Startup logs application startup information
func (l *Logger) Startup(msg string, args ...any) {
	l.WithServiceContext().Info(msg, args...)
}

// Request logs HTTP request completion at level, with extra attributes
func (l *Logger) Request(level slog.Level, reqID, method, path string, statusCode int, latencyMs int64, args ...any) {
	l.WithRequestID(reqID).
		WithHTTPRequest(method, path, statusCode, latencyMs).
		Log(context.Background(), level, "HTTP request completed", args...)
}

// Upstream logs a failed or slow metrics API interaction
func (l *Logger) Upstream(msg string, args ...any) {
	l.Logger.Info("upstream: "+msg, args...)
}

// UpstreamError logs metrics API errors
func (l *Logger) UpstreamError(msg string, err error, args ...any) {
	l.WithError(err).Error("upstream: "+msg, args...)
}

// Store logs preset store operations
func (l *Logger) Store(msg string, args ...any) {
	l.Logger.Info("store: "+msg, args...)
}

// StoreError logs preset store errors
func (l *Logger) StoreError(msg string, err error) {
	l.WithError(err).Error("store: " + msg)
}

// HealthCheck logs health check operations
func (l *Logger) HealthCheck(msg string, args ...any) {
	l.Logger.Info("healthcheck: "+msg, args...)
}
