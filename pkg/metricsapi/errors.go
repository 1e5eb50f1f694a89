package metricsapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var errTrailingData = errors.New("unexpected data after JSON value")

// APIError is returned when the metrics API answers with a non-2xx status.
// The response body is not parsed.
type APIError struct {
	StatusCode int
	Status     string
	Method     string
	Path       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s", e.Status)
}

// Temporary reports whether retrying the request may succeed
func (e *APIError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// DecodeError is returned when a 2xx body is not valid JSON for the target type
type DecodeError struct {
	Path string
	Err  error
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying parse error
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// TransportError wraps a failure to reach the metrics API
type TransportError struct {
	Method string
	Path   string
	Err    error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsAPIError reports whether err carries an APIError
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// AsAPIError extracts the APIError from err
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsDecodeError reports whether err carries a DecodeError
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}

// IsTransport reports whether err is a network level failure, including timeouts
func IsTransport(err error) bool {
	var tErr *TransportError
	if errors.As(err, &tErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsCanceled reports whether err was caused by context cancellation
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled)
}
