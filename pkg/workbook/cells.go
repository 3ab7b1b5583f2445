package workbook

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const dateLayout = "2006-01-02"

// dateLayouts lists the textual date shapes normalised to YYYY-MM-DD.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000Z",
}

// builtinDateFormats are the excel built-in number formats that render dates.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true,
	20: true, 21: true, 22: true, 45: true, 46: true, 47: true,
}

// cellReader resolves raw cell text, coercing date-typed and date-looking
// values to YYYY-MM-DD.
type cellReader struct {
	file  *excelize.File
	sheet string
}

func (r cellReader) value(axis string, dateField bool) string {
	raw, err := r.file.GetCellValue(r.sheet, axis, excelize.Options{RawCellValue: true})
	if err != nil {
		return ""
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if r.stringTyped(axis) {
			return raw
		}
		if dateField || r.dateTyped(axis) {
			if normalised, ok := serialDate(serial); ok {
				return normalised
			}
		}
		return raw
	}

	if normalised, ok := normaliseDateText(raw); ok {
		return normalised
	}
	return raw
}

// stringTyped reports whether the cell stores text, in which case digits are
// kept verbatim rather than read as a serial date.
func (r cellReader) stringTyped(axis string) bool {
	kind, err := r.file.GetCellType(r.sheet, axis)
	if err != nil {
		return false
	}
	return kind == excelize.CellTypeSharedString || kind == excelize.CellTypeInlineString
}

func (r cellReader) dateTyped(axis string) bool {
	if kind, err := r.file.GetCellType(r.sheet, axis); err == nil && kind == excelize.CellTypeDate {
		return true
	}
	styleID, err := r.file.GetCellStyle(r.sheet, axis)
	if err != nil || styleID == 0 {
		return false
	}
	style, err := r.file.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	if builtinDateFormats[style.NumFmt] {
		return true
	}
	return style.CustomNumFmt != nil && customDateFormat(*style.CustomNumFmt)
}

func serialDate(serial float64) (string, bool) {
	if serial <= 0 {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return t.Format(dateLayout), true
}

// normaliseDateText recognises dates written as text. Only values starting
// with a four digit year are considered so free text is never rewritten.
func normaliseDateText(raw string) (string, bool) {
	if len(raw) < 8 || !allDigits(raw[:4]) {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(dateLayout), true
		}
	}
	return "", false
}

func customDateFormat(format string) bool {
	lower := strings.ToLower(format)
	inQuote := false
	var cleaned strings.Builder
	for _, ch := range lower {
		if ch == '"' {
			inQuote = !inQuote
			continue
		}
		if !inQuote {
			cleaned.WriteRune(ch)
		}
	}
	body := cleaned.String()
	return strings.Contains(body, "yy") || (strings.Contains(body, "d") && strings.Contains(body, "m"))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
