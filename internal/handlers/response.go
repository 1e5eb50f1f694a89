// Package handlers provides the HTTP handlers of the dashboard service.
package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/chybatronik/goMetricsDashboard/internal/errors"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
	"github.com/chybatronik/goMetricsDashboard/internal/middleware"
)

// SessionHeader ties dashboard loads to one browser tab
const SessionHeader = middleware.SessionHeader

// extractRequestID extracts request ID from context
func extractRequestID(r *http.Request) string {
	if reqID := middleware.GetRequestID(r.Context()); reqID != "" {
		return reqID
	}
	return "unknown"
}

// writeJSON writes v with the given status
func writeJSON(w http.ResponseWriter, logger *logging.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response",
			logging.FieldError, err,
			logging.FieldHTTPStatus, status,
		)
	}
}

// writeError writes an already mapped error
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	apperrors.WriteError(w, r, err)
}
