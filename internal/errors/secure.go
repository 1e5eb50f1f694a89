// Package errors writes sanitized JSON error responses and maps internal
// failures onto client safe DashboardErrors.
package errors

import (
	"context"
	stderrors "errors"

	"github.com/chybatronik/goMetricsDashboard/internal/dashboard"
	"github.com/chybatronik/goMetricsDashboard/internal/validation"
	"github.com/chybatronik/goMetricsDashboard/pkg/errors"
	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// MapUpstreamErrorSecure maps a failed dashboard load to a client safe error.
// The upstream status, path and cause are never exposed.
func MapUpstreamErrorSecure(err error) error {
	if err == nil {
		return nil
	}
	if errors.IsDashboardError(err) {
		return err
	}

	switch {
	case stderrors.Is(err, dashboard.ErrSuperseded):
		return errors.NewConflictError(errors.ErrCodeRequestSuperseded, "Request superseded by a newer one")
	case metricsapi.IsCanceled(err):
		return errors.NewCanceledError()
	case stderrors.Is(err, context.DeadlineExceeded):
		return errors.NewUnavailableError(errors.ErrCodeUpstreamTimeout, "Metrics API did not respond in time")
	case metricsapi.IsAPIError(err):
		return errors.NewUpstreamError(errors.ErrCodeUpstreamError, "Metrics API returned an error")
	case metricsapi.IsDecodeError(err):
		return errors.NewUpstreamError(errors.ErrCodeUpstreamInvalidResponse, "Metrics API returned an invalid response")
	case metricsapi.IsTransport(err):
		return errors.NewUnavailableError(errors.ErrCodeUpstreamUnavailable, "Metrics API is unavailable")
	}

	var unknown *dashboard.UnknownSectionError
	if stderrors.As(err, &unknown) {
		return errors.MapValidationError("section", "")
	}
	if fe, ok := validation.AsFieldError(err); ok {
		return errors.MapValidationError(fe.Field, fe.Reason)
	}

	return errors.NewUpstreamError(errors.ErrCodeUpstreamError, "Metrics API returned an error")
}
