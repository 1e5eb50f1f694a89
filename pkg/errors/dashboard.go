// Package errors provides the error type returned to dashboard clients.
// Responses follow the unified format: {"error": "message", "code": "ERROR_CODE"}
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Validation errors (400 Bad Request)
	ErrCodeValidationFailed = "VALIDATION_ERROR"
	ErrCodeInvalidDate      = "INVALID_DATE"
	ErrCodeInvalidDateRange = "INVALID_DATE_RANGE"
	ErrCodeInvalidSection   = "INVALID_SECTION"
	ErrCodeInvalidPreset    = "INVALID_PRESET"
	ErrCodeInvalidUnicode   = "INVALID_UNICODE"
	ErrCodeInvalidSession   = "INVALID_SESSION"
	ErrCodeInvalidPaging    = "INVALID_PAGING"
	ErrCodeInvalidJSON      = "INVALID_JSON"
	ErrCodeInvalidContent   = "INVALID_CONTENT_TYPE"
	ErrCodeEmptyBody        = "EMPTY_REQUEST_BODY"
	ErrCodePayloadTooLarge  = "PAYLOAD_TOO_LARGE"

	// Not found (404)
	ErrCodePresetNotFound  = "PRESET_NOT_FOUND"
	ErrCodeSectionNotFound = "SECTION_NOT_FOUND"

	// Conflicts (409)
	ErrCodePresetExists      = "PRESET_EXISTS"
	ErrCodeRequestSuperseded = "REQUEST_SUPERSEDED"

	// Client went away (499)
	ErrCodeRequestCanceled = "REQUEST_CANCELED"

	// Upstream metrics API (502/503/504)
	ErrCodeUpstreamError           = "UPSTREAM_ERROR"
	ErrCodeUpstreamInvalidResponse = "UPSTREAM_INVALID_RESPONSE"
	ErrCodeUpstreamUnavailable     = "UPSTREAM_UNAVAILABLE"
	ErrCodeUpstreamTimeout         = "UPSTREAM_TIMEOUT"

	// Preset store (500/503)
	ErrCodeStoreError         = "STORE_ERROR"
	ErrCodePresetsDisabled    = "PRESETS_DISABLED"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// StatusClientClosedRequest is the nginx convention for a request the client
// abandoned before the response was written
const StatusClientClosedRequest = 499

// DashboardError is an error safe to return to clients, with its HTTP status
type DashboardError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

// Error implements the error interface
func (e *DashboardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// GetHTTPStatus returns the HTTP status code for the error
func (e *DashboardError) GetHTTPStatus() int {
	return e.HTTPStatus
}

// NewValidationError creates validation errors (400 Bad Request)
func NewValidationError(errCode, message string) *DashboardError {
	return &DashboardError{Code: errCode, Message: message, HTTPStatus: http.StatusBadRequest}
}

// NewNotFoundError creates not found errors (404 Not Found)
func NewNotFoundError(errCode, message string) *DashboardError {
	return &DashboardError{Code: errCode, Message: message, HTTPStatus: http.StatusNotFound}
}

// NewPresetNotFoundError reports a missing saved filter
func NewPresetNotFoundError(name string) *DashboardError {
	return NewNotFoundError(ErrCodePresetNotFound, fmt.Sprintf("Preset '%s' not found", name))
}

// NewConflictError creates conflict errors (409 Conflict)
func NewConflictError(errCode, message string) *DashboardError {
	return &DashboardError{Code: errCode, Message: message, HTTPStatus: http.StatusConflict}
}

// NewUpstreamError creates errors for failed metrics API calls (502 Bad Gateway)
func NewUpstreamError(errCode, message string) *DashboardError {
	return &DashboardError{Code: errCode, Message: message, HTTPStatus: http.StatusBadGateway}
}

// NewUnavailableError creates errors for unreachable dependencies (503 Service Unavailable)
func NewUnavailableError(errCode, message string) *DashboardError {
	return &DashboardError{Code: errCode, Message: message, HTTPStatus: http.StatusServiceUnavailable}
}

// NewCanceledError creates errors for requests abandoned by the client (499)
func NewCanceledError() *DashboardError {
	return &DashboardError{Code: ErrCodeRequestCanceled, Message: "Request canceled", HTTPStatus: StatusClientClosedRequest}
}

// NewStoreError creates errors for failed preset store operations (500 Internal Server Error)
func NewStoreError(message string) *DashboardError {
	return &DashboardError{Code: ErrCodeStoreError, Message: message, HTTPStatus: http.StatusInternalServerError}
}

// IsDashboardError checks if err carries a DashboardError
func IsDashboardError(err error) bool {
	_, ok := GetDashboardError(err)
	return ok
}

// GetDashboardError extracts a DashboardError from err
func GetDashboardError(err error) (*DashboardError, bool) {
	var dErr *DashboardError
	ok := errors.As(err, &dErr)
	return dErr, ok
}

// MapValidationError maps a failed field check to a DashboardError
func MapValidationError(fieldName, details string) *DashboardError {
	switch fieldName {
	case "start_date", "end_date":
		if details == "order" {
			return NewValidationError(ErrCodeInvalidDateRange, "start_date must not be after end_date")
		}
		return NewValidationError(ErrCodeInvalidDate, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fieldName))
	case "section":
		return NewNotFoundError(ErrCodeSectionNotFound, "Unknown dashboard section")
	case "preset", "name":
		if details == "empty" {
			return NewValidationError(ErrCodeInvalidPreset, "Preset name cannot be empty")
		}
		if details == "unicode" {
			return NewValidationError(ErrCodeInvalidUnicode, "Preset name contains invalid characters")
		}
		return NewValidationError(ErrCodeInvalidPreset, "Preset name cannot exceed 100 characters")
	case "session":
		return NewValidationError(ErrCodeInvalidSession, "X-Dashboard-Session must be at most 128 printable characters")
	case "limit", "offset":
		return NewValidationError(ErrCodeInvalidPaging, fmt.Sprintf("%s must be a non-negative integer", fieldName))
	default:
		return NewValidationError(ErrCodeValidationFailed, fmt.Sprintf("Validation failed for field: %s", fieldName))
	}
}
