package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateUnicodeSecurity(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{name: "plain preset name", input: "Q1 2024"},
		{name: "accented name", input: "Revisión de José"},
		{name: "pure Cyrillic", input: "Отчёт за квартал"},
		{name: "separated mixed scripts", input: "Sprint-Спринт 12"},
		{name: "null byte injection", input: "test\x00null", expectedErr: ErrInvalidUnicodeSecurity},
		{name: "backspace character", input: "control\x08char", expectedErr: ErrInvalidUnicodeSecurity},
		{name: "escape sequence", input: "\x1b[31mred", expectedErr: ErrInvalidUnicodeSecurity},
		{name: "zero-width space", input: "zero\u200Bwidth", expectedErr: ErrInvalidUnicodeCategory},
		{name: "zero-width joiner", input: "test\u200Dformat", expectedErr: ErrInvalidUnicodeCategory},
		{name: "private use character", input: "test\ue000private", expectedErr: ErrInvalidUnicodeCategory},
		{name: "Cyrillic homograph", input: "аdmin", expectedErr: ErrHomographAttackDetected},
		{name: "invalid UTF-8", input: "bad\xffbyte", expectedErr: ErrInvalidUTF8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUnicodeSecurity(tc.input)

			if tc.expectedErr == nil {
				if err != nil {
					t.Errorf("Expected no error for input: %q, got: %v", tc.input, err)
				}
				return
			}
			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("Expected %v for input %q, got: %v", tc.expectedErr, tc.input, err)
			}
		})
	}
}

func TestContainsHomographAttacks(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{"no homograph", "release-train", false},
		{"Cyrillic a before Latin", "аdmin", true},
		{"Cyrillic e inside Latin", "tеst", true},
		{"Cyrillic o at end", "hellо", true},
		{"pure Cyrillic", "Иван Петров", false},
		{"hyphen separated", "Alex-Алексей", false},
		{"space separated", "Sprint Спринт", false},
		{"Greek is not tracked", "αβγδε", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if result := containsHomographAttacks(tc.input); result != tc.expected {
				t.Errorf("Expected %v for input %q, got %v", tc.expected, tc.input, result)
			}
		})
	}
}

func TestValidateFieldSecurity(t *testing.T) {
	if err := ValidateFieldSecurity("Квартальный отчёт", "name", 20); err != nil {
		t.Errorf("Expected multibyte name within the character limit to pass, got: %v", err)
	}

	err := ValidateFieldSecurity(strings.Repeat("я", 21), "name", 20)
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum length of 20") {
		t.Errorf("Expected length error, got: %v", err)
	}

	err = ValidateFieldSecurity("x\x00y", "name", 20)
	if !errors.Is(err, ErrInvalidUnicodeSecurity) {
		t.Errorf("Expected wrapped ErrInvalidUnicodeSecurity, got: %v", err)
	}
}

func TestValidatePayloadSize(t *testing.T) {
	testCases := []struct {
		name        string
		payload     []byte
		maxSize     int64
		expectError bool
	}{
		{"under limit", []byte(`{"name":"Q1"}`), 1024, false},
		{"at exact limit", make([]byte, 1024), 1024, false},
		{"over limit", make([]byte, 2048), 1024, true},
		{"nil payload", nil, 1024, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePayloadSize(tc.payload, tc.maxSize)
			if (err != nil) != tc.expectError {
				t.Errorf("ValidatePayloadSize() error = %v, expectError %v", err, tc.expectError)
			}
		})
	}
}
