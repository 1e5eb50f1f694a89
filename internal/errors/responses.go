package errors

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chybatronik/goMetricsDashboard/pkg/errors"
)

// RequestIDHeader carries the request ID set by the request ID middleware
const RequestIDHeader = "X-Request-ID"

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

// requestID reads the ID the middleware already put on the response
func requestID(w http.ResponseWriter, r *http.Request) string {
	if id := w.Header().Get(RequestIDHeader); id != "" {
		return id
	}
	if r != nil {
		return r.Header.Get(RequestIDHeader)
	}
	return ""
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// writeSecureErrorResponse writes a secure error response
func writeSecureErrorResponse(w http.ResponseWriter, statusCode int, code, message string) {
	// NEVER include internal details in user-facing errors
	response := ErrorResponse{
		Error: message,
		Code:  code,
	}

	slog.Warn("API error response", "status", statusCode, "code", code, "message", message)

	setSecurityHeaders(w)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// writeSecureErrorResponseWithRequest writes a secure error response with request context
func writeSecureErrorResponseWithRequest(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	reqID := requestID(w, r)

	response := ErrorResponse{
		Error: message,
		Code:  code,
	}

	attrs := []any{"req_id", reqID, "status", statusCode, "code", code, "message", message}
	if r != nil {
		attrs = append(attrs, "method", r.Method, "path", r.URL.Path)
	}
	switch {
	case statusCode == errors.StatusClientClosedRequest:
		slog.Debug("API error response", attrs...)
	case statusCode >= http.StatusInternalServerError:
		slog.Error("API error response", attrs...)
	default:
		slog.Warn("API error response", attrs...)
	}

	setSecurityHeaders(w)
	if reqID != "" {
		w.Header().Set(RequestIDHeader, reqID)
	}

	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// WriteError writes err as a JSON error response. Errors that are not
// already a DashboardError are reported as a generic internal error.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	dashErr, ok := errors.GetDashboardError(err)
	if !ok {
		slog.Error("unmapped error", "req_id", requestID(w, r), "error", err)
		WriteInternalError(w, r)
		return
	}
	writeSecureErrorResponseWithRequest(w, r, dashErr.GetHTTPStatus(), dashErr.Code, dashErr.Message)
}

// WriteValidationError writes a validation error response (400 Bad Request)
func WriteValidationError(w http.ResponseWriter, r *http.Request, field, message string) {
	WriteError(w, r, errors.MapValidationError(field, message))
}

// WriteNotFoundError writes a not found error response (404 Not Found)
func WriteNotFoundError(w http.ResponseWriter, r *http.Request, resource string) {
	message := "Resource not found"
	if resource != "" {
		message = resource + " not found"
	}
	writeSecureErrorResponseWithRequest(w, r, http.StatusNotFound, "NOT_FOUND", message)
}

// WriteMethodNotAllowedError writes a 405 response
func WriteMethodNotAllowedError(w http.ResponseWriter, r *http.Request) {
	writeSecureErrorResponseWithRequest(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed")
}

// WriteRateLimitError writes a rate limit error response (429 Too Many Requests)
func WriteRateLimitError(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Retry-After", "60")
	writeSecureErrorResponseWithRequest(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests")
}

// WriteInternalError writes an internal server error response (500 Internal Server Error)
func WriteInternalError(w http.ResponseWriter, r *http.Request) {
	writeSecureErrorResponseWithRequest(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
}

// WriteServiceUnavailableError writes a service unavailable error response (503 Service Unavailable)
func WriteServiceUnavailableError(w http.ResponseWriter, r *http.Request) {
	writeSecureErrorResponseWithRequest(w, r, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Service temporarily unavailable")
}

// sanitizeErrorMessage removes potentially dangerous information from error messages
func sanitizeErrorMessage(message string) string {
	originalMessage := message

	// Remove potential file paths
	message = strings.ReplaceAll(message, "/", "_")

	// Remove potential database identifiers
	message = strings.ReplaceAll(message, "pg_", "")
	message = strings.ReplaceAll(message, "sql_", "")

	dangerousTerms := []string{
		"internal", "system", "database", "server", "stack trace",
		"panic", "fatal", "exception", "error code", "line",
		"file:", "at line", "in function",
	}

	lowerOriginal := strings.ToLower(originalMessage)
	for _, term := range dangerousTerms {
		if strings.Contains(lowerOriginal, term) {
			message = "Validation failed"
			break
		}
	}

	if len(message) > 200 {
		message = "Validation failed with invalid input"
	}

	return strings.TrimSpace(message)
}

// WriteCustomError writes a custom error response with provided status code
func WriteCustomError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	writeSecureErrorResponseWithRequest(w, r, statusCode, code, sanitizeErrorMessage(message))
}

// WriteSecurityError writes a security-related error response
func WriteSecurityError(w http.ResponseWriter, r *http.Request, securityCode string) {
	securityMessages := map[string]string{
		"INVALID_UNICODE":    "Invalid input characters detected",
		"VALIDATION_ERROR":   "Invalid input provided",
		"SECURITY_VIOLATION": "Security validation failed",
		"BLOCKED_REQUEST":    "Request blocked for security reasons",
	}

	message := securityMessages[securityCode]
	if message == "" {
		message = "Security validation failed"
	}

	writeSecureErrorResponseWithRequest(w, r, http.StatusBadRequest, securityCode, message)
}
