package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	apperrors "github.com/chybatronik/goMetricsDashboard/internal/errors"
	"github.com/chybatronik/goMetricsDashboard/internal/logging"
)

// ErrorHandler recovers from panics in downstream handlers and turns them
// into a sanitized 500 response.
type ErrorHandler struct {
	next   http.Handler
	logger *logging.Logger
}

// NewErrorHandler creates a new panic recovery middleware
func NewErrorHandler(logger *logging.Logger, next http.Handler) *ErrorHandler {
	return &ErrorHandler{next: next, logger: logger}
}

// Recoverer adapts ErrorHandler to the router's middleware signature
func Recoverer(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return NewErrorHandler(logger, next)
	}
}

// ServeHTTP implements the http.Handler interface with panic recovery
func (eh *ErrorHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	wrapped, ok := w.(*ResponseWriter)
	if !ok {
		wrapped = NewResponseWriter(w)
	}

	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		if rec == http.ErrAbortHandler {
			panic(rec)
		}

		eh.logger.WithRequestID(GetRequestID(r.Context())).Error("Panic recovered",
			logging.FieldError, fmt.Sprint(rec),
			logging.FieldHTTPMethod, r.Method,
			logging.FieldHTTPPath, r.URL.Path,
			"stack", string(debug.Stack()),
		)

		if !wrapped.HeaderWritten() {
			apperrors.WriteInternalError(wrapped, r)
		}
	}()

	eh.next.ServeHTTP(wrapped, r)
}
