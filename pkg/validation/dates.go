package validation

import (
	"regexp"
	"time"
)

const (
	// DateLayout is the only accepted date representation.
	DateLayout = "2006-01-02"

	minYear = 1900
	maxYear = 2100
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ParseDate parses a strict YYYY-MM-DD calendar date between 1900 and 2100.
// Roll-overs such as 2024-02-30 are rejected.
func ParseDate(raw string) (time.Time, bool) {
	if !datePattern.MatchString(raw) {
		return time.Time{}, false
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	if year := parsed.Year(); year < minYear || year > maxYear {
		return time.Time{}, false
	}
	return parsed, true
}

// ValidDate reports whether raw is an acceptable date.
func ValidDate(raw string) bool {
	_, ok := ParseDate(raw)
	return ok
}
