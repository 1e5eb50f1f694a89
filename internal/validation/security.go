// Package validation checks user supplied dashboard input: date filters,
// preset names and session keys.
package validation

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Security validation errors
var (
	ErrInvalidUnicodeSecurity  = errors.New("input contains control characters")
	ErrHomographAttackDetected = errors.New("input mixes Cyrillic lookalikes into Latin text")
	ErrInvalidUnicodeCategory  = errors.New("input contains blocked unicode characters")
	ErrInvalidUTF8             = errors.New("input is not valid UTF-8")
)

// Blocked Unicode categories for security
var blockedCategories = []*unicode.RangeTable{
	unicode.Cc, // Control characters
	unicode.Cf, // Format characters (zero-width, etc.)
	unicode.Cs, // Surrogate characters
	unicode.Co, // Private use characters
}

// Cyrillic letters that render like Latin ones
var cyrillicLookalikes = map[rune]struct{}{
	'а': {}, 'е': {}, 'о': {}, 'р': {}, 'с': {}, 'х': {}, 'у': {},
	'А': {}, 'Е': {}, 'О': {}, 'Р': {}, 'С': {}, 'Х': {}, 'У': {},
}

// ValidateUnicodeSecurity rejects control characters, invisible format
// characters and Latin words spoofed with Cyrillic lookalikes.
func ValidateUnicodeSecurity(input string) error {
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}

	for _, r := range input {
		if r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if unicode.IsControl(r) {
			return ErrInvalidUnicodeSecurity
		}
	}

	normalized := norm.NFKC.String(input)

	if containsHomographAttacks(input) || containsHomographAttacks(normalized) {
		return ErrHomographAttackDetected
	}

	for _, r := range normalized {
		if unicode.IsOneOf(blockedCategories, r) {
			return ErrInvalidUnicodeCategory
		}
	}

	return nil
}

func isLatinLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// containsHomographAttacks reports a Cyrillic lookalike directly adjacent to
// a Latin letter. Pure Cyrillic text and separated mixed text pass.
func containsHomographAttacks(input string) bool {
	runes := []rune(input)

	for i, r := range runes {
		if _, ok := cyrillicLookalikes[r]; !ok {
			continue
		}
		if i > 0 && isLatinLetter(runes[i-1]) {
			return true
		}
		if i < len(runes)-1 && isLatinLetter(runes[i+1]) {
			return true
		}
	}

	return false
}

// ValidateFieldSecurity validates a single field with length and security
// checks. maxLen counts characters, not bytes.
func ValidateFieldSecurity(field, fieldName string, maxLen int) error {
	if utf8.RuneCountInString(field) > maxLen {
		return fmt.Errorf("field %s exceeds maximum length of %d characters", fieldName, maxLen)
	}

	if err := ValidateUnicodeSecurity(field); err != nil {
		return fmt.Errorf("unicode security validation failed for field %s: %w", fieldName, err)
	}

	return nil
}

// ValidatePayloadSize validates the size of incoming payloads
func ValidatePayloadSize(payload []byte, maxSize int64) error {
	if int64(len(payload)) > maxSize {
		return fmt.Errorf("payload size %d exceeds maximum allowed size of %d bytes", len(payload), maxSize)
	}
	return nil
}
