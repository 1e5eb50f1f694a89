package validation

import (
	"strings"
	"testing"

	"github.com/chybatronik/goMetricsDashboard/pkg/metricsapi"
)

func TestValidateDateRange(t *testing.T) {
	testCases := []struct {
		name        string
		r           metricsapi.DateRange
		expectField string
		expectWhy   string
	}{
		{name: "unbounded", r: metricsapi.DateRange{}},
		{name: "valid", r: metricsapi.DateRange{StartDate: "2024-01-01", EndDate: "2024-06-30"}},
		{name: "start only", r: metricsapi.DateRange{StartDate: "2024-01-01"}},
		{name: "same day", r: metricsapi.DateRange{StartDate: "2024-02-29", EndDate: "2024-02-29"}},
		{name: "bad start", r: metricsapi.DateRange{StartDate: "2024/01/01"}, expectField: "start_date", expectWhy: ReasonFormat},
		{name: "impossible end", r: metricsapi.DateRange{EndDate: "2023-02-29"}, expectField: "end_date", expectWhy: ReasonFormat},
		{name: "reversed", r: metricsapi.DateRange{StartDate: "2024-06-30", EndDate: "2024-01-01"}, expectField: "start_date", expectWhy: ReasonOrder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDateRange(tc.r)

			if tc.expectField == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}

			fe, ok := AsFieldError(err)
			if !ok {
				t.Fatalf("Expected *FieldError, got: %v", err)
			}
			if fe.Field != tc.expectField || fe.Reason != tc.expectWhy {
				t.Errorf("Expected %s/%s, got %s/%s", tc.expectField, tc.expectWhy, fe.Field, fe.Reason)
			}
		})
	}
}

func TestValidatePresetName(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expectWhy string
	}{
		{name: "simple", input: "Q1 2024"},
		{name: "surrounding whitespace is ignored", input: "  last sprint  "},
		{name: "Cyrillic", input: "Первый квартал"},
		{name: "empty", input: "", expectWhy: ReasonEmpty},
		{name: "whitespace only", input: "   ", expectWhy: ReasonEmpty},
		{name: "too long", input: strings.Repeat("a", MaxPresetNameLength+1), expectWhy: ReasonTooLong},
		{name: "control characters", input: "q1\x07", expectWhy: ReasonUnicode},
		{name: "homograph", input: "аdmin", expectWhy: ReasonUnicode},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePresetName(tc.input)

			if tc.expectWhy == "" {
				if err != nil {
					t.Errorf("Expected no error for %q, got: %v", tc.input, err)
				}
				return
			}

			fe, ok := AsFieldError(err)
			if !ok {
				t.Fatalf("Expected *FieldError, got: %v", err)
			}
			if fe.Field != "name" || fe.Reason != tc.expectWhy {
				t.Errorf("Expected name/%s, got %s/%s", tc.expectWhy, fe.Field, fe.Reason)
			}
		})
	}
}

func TestValidateSessionKey(t *testing.T) {
	if err := ValidateSessionKey(""); err != nil {
		t.Errorf("Empty session key should be allowed, got: %v", err)
	}
	if err := ValidateSessionKey("tab-7f3c"); err != nil {
		t.Errorf("Expected valid session key, got: %v", err)
	}
	if err := ValidateSessionKey(strings.Repeat("s", MaxSessionKeyLength+1)); err == nil {
		t.Error("Expected error for oversized session key")
	}
	if err := ValidateSessionKey("tab\x00"); err == nil {
		t.Error("Expected error for session key with control characters")
	}
}
