package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

// Limits on user supplied dashboard input
const (
	MaxPresetNameLength = 100
	MaxSessionKeyLength = 128
	MaxPresetBodyBytes  = 4 << 10
)

// Reasons carried by FieldError
const (
	ReasonFormat  = "format"
	ReasonOrder   = "order"
	ReasonEmpty   = "empty"
	ReasonTooLong = "too_long"
	ReasonUnicode = "unicode"
)

// FieldError names the offending field and why it was rejected. The reason
// is one of the Reason constants and drives the client facing error code.
type FieldError struct {
	Field  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s (%s): %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid %s (%s)", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return e.Err }

// AsFieldError extracts a FieldError from err
func AsFieldError(err error) (*FieldError, bool) {
	var fe *FieldError
	ok := errors.As(err, &fe)
	return fe, ok
}

// ValidateDate checks a single YYYY-MM-DD value. Empty means unbounded.
func ValidateDate(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(metricsapi.DateLayout, value); err != nil {
		return &FieldError{Field: field, Reason: ReasonFormat, Err: err}
	}
	return nil
}

// ValidateDateRange checks both bounds and their order
func ValidateDateRange(r metricsapi.DateRange) error {
	if err := ValidateDate(metricsapi.ParamStartDate, r.StartDate); err != nil {
		return err
	}
	if err := ValidateDate(metricsapi.ParamEndDate, r.EndDate); err != nil {
		return err
	}
	// layout is zero padded, so string order is date order
	if r.StartDate != "" && r.EndDate != "" && r.StartDate > r.EndDate {
		return &FieldError{Field: metricsapi.ParamStartDate, Reason: ReasonOrder}
	}
	return nil
}

// NormalizePresetName trims surrounding whitespace
func NormalizePresetName(name string) string {
	return strings.TrimSpace(name)
}

// ValidatePresetName checks a saved filter name
func ValidatePresetName(name string) error {
	name = NormalizePresetName(name)
	if name == "" {
		return &FieldError{Field: "name", Reason: ReasonEmpty}
	}
	if utf8.RuneCountInString(name) > MaxPresetNameLength {
		return &FieldError{Field: "name", Reason: ReasonTooLong}
	}
	if err := ValidateUnicodeSecurity(name); err != nil {
		return &FieldError{Field: "name", Reason: ReasonUnicode, Err: err}
	}
	return nil
}

// ValidateSessionKey checks the optional dashboard session header. Empty is
// allowed and means the load is not tied to a session.
func ValidateSessionKey(key string) error {
	if key == "" {
		return nil
	}
	if err := ValidateFieldSecurity(key, "session", MaxSessionKeyLength); err != nil {
		return &FieldError{Field: "session", Reason: ReasonFormat, Err: err}
	}
	return nil
}
