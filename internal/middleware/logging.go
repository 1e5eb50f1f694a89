package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/pkg/errors"
)

// SessionHeader ties dashboard loads to one browser tab
const SessionHeader = "X-Dashboard-Session"

// RequestLogger logs one line per request after the handler returns. The line
// carries the matched route pattern, the tab session when sent and the body
// size, at a level chosen by requestLevel.
func RequestLogger(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := NewResponseWriter(w)

			next.ServeHTTP(rw, r)

			attrs := []any{
				logging.FieldRoute, routePattern(r),
				logging.FieldBytes, rw.BytesWritten(),
			}
			if session := r.Header.Get(SessionHeader); session != "" {
				attrs = append(attrs, logging.FieldSession, session)
			}

			logger.Request(
				requestLevel(r.URL.Path, rw.StatusCode()),
				GetRequestID(r.Context()),
				r.Method,
				r.URL.Path,
				rw.StatusCode(),
				time.Since(start).Milliseconds(),
				attrs...,
			)
		})
	}
}

// requestLevel keeps health polling and abandoned loads out of info logs
func requestLevel(path string, status int) slog.Level {
	switch {
	case status == errors.StatusClientClosedRequest:
		return slog.LevelDebug
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	case strings.HasPrefix(path, "/health"):
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// routePattern returns the chi pattern matched for r, or "" outside a chi router
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
