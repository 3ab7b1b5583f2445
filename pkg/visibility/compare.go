package visibility

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-sampleform/pkg/schema"
)

const dateLayout = "2006-01-02"

// Compare applies op to the current value (left) and the condition value
// (right). Operands are compared numerically when both parse as numbers,
// chronologically when both are YYYY-MM-DD dates, and lexicographically
// otherwise. Surrounding whitespace is ignored.
func Compare(op schema.Operator, left, right string) bool {
	cmp := order(strings.TrimSpace(left), strings.TrimSpace(right))
	switch op {
	case schema.OpEqual:
		return cmp == 0
	case schema.OpNotEqual:
		return cmp != 0
	case schema.OpGreater:
		return cmp > 0
	case schema.OpLess:
		return cmp < 0
	case schema.OpGreaterEqual:
		return cmp >= 0
	case schema.OpLessEqual:
		return cmp <= 0
	case schema.OpInvalid:
		return false
	}
	return false
}

func order(left, right string) int {
	if l, ok := parseNumber(left); ok {
		if r, ok := parseNumber(right); ok {
			switch {
			case l < r:
				return -1
			case l > r:
				return 1
			default:
				return 0
			}
		}
	}
	if l, ok := parseDate(left); ok {
		if r, ok := parseDate(right); ok {
			return l.Compare(r)
		}
	}
	return strings.Compare(left, right)
}

func parseNumber(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	ch := raw[0]
	if !((ch >= '0' && ch <= '9') || ch == '-' || ch == '+' || ch == '.') {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func parseDate(raw string) (time.Time, bool) {
	if len(raw) != len(dateLayout) {
		return time.Time{}, false
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}
