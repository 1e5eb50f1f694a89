package metricsapi

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format used by start_date and end_date
const DateLayout = "2006-01-02"

// DateRange bounds a metrics query by calendar date.
// An empty field means the range is unbounded on that side.
type DateRange struct {
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// IsZero reports whether both bounds are empty
func (r DateRange) IsZero() bool {
	return r.StartDate == "" && r.EndDate == ""
}

// Params returns the range as query parameters. Empty bounds are omitted.
func (r DateRange) Params() *Params {
	p := NewParams()
	if r.StartDate != "" {
		p.Set(ParamStartDate, r.StartDate)
	}
	if r.EndDate != "" {
		p.Set(ParamEndDate, r.EndDate)
	}
	return p
}

// Validate checks that non-empty bounds are YYYY-MM-DD dates and that start
// does not come after end
func (r DateRange) Validate() error {
	var start, end time.Time
	var err error
	if r.StartDate != "" {
		if start, err = time.Parse(DateLayout, r.StartDate); err != nil {
			return fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", ParamStartDate, r.StartDate)
		}
	}
	if r.EndDate != "" {
		if end, err = time.Parse(DateLayout, r.EndDate); err != nil {
			return fmt.Errorf("invalid %s %q: expected YYYY-MM-DD", ParamEndDate, r.EndDate)
		}
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return fmt.Errorf("%s %s is after %s %s", ParamStartDate, r.StartDate, ParamEndDate, r.EndDate)
	}
	return nil
}
