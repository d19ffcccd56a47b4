package validation

import (
	"errors"
	"strings"
)

// ErrQueryEmpty is returned when the query text is empty or whitespace-only after trim.
var ErrQueryEmpty = errors.New("query is required")

// ErrQueryTooLong is returned when the query text exceeds the maximum length.
var ErrQueryTooLong = errors.New("query too long")

// ErrInvalidRegionCode is returned when the region code is not two ASCII letters.
var ErrInvalidRegionCode = errors.New("region code must be two letters")

// ValidateQuery trims the input and enforces the maximum length (in runes).
// Returns the trimmed string or an error suitable for 400 INVALID_QUERY
// responses. Place-name extraction and normalization happen downstream.
func ValidateQuery(input string, maxLen int) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", ErrQueryEmpty
	}
	if maxLen > 0 && len([]rune(s)) > maxLen {
		return "", ErrQueryTooLong
	}
	return s, nil
}

// ValidateRegionCode trims and uppercases a two-letter US region code
// ("ca" -> "CA"). Anything other than exactly two ASCII letters is rejected.
func ValidateRegionCode(input string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(input))
	if len(s) != 2 {
		return "", ErrInvalidRegionCode
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return "", ErrInvalidRegionCode
		}
	}
	return s, nil
}
