package tabular

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days since 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// dateLayouts are tried in order when coercing a string cell to a date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"2-Jan-2006",
	"2 Jan 2006",
	"Jan 2, 2006",
}

// SerialDate converts a spreadsheet serial-date number to a time.
func SerialDate(serial float64) time.Time {
	return serialEpoch.Add(time.Duration(serial * 24 * float64(time.Hour)))
}

// String coerces a cell value to its string form. Nil cells become "".
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return ""
	}
}

// Float coerces a cell value to a number. The ok result is false when the
// cell holds nothing numeric; callers substitute their own default.
func Float(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(val, ",", ""))
		if cleaned == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// Time coerces a cell value to a date. Numeric cells are treated as
// spreadsheet serial dates; strings are tried against the known layouts.
func Time(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case float64:
		if val <= 0 {
			return time.Time{}, false
		}
		return SerialDate(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		// A bare serial number may arrive as text
		if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 20000 && serial < 80000 {
			return SerialDate(serial), true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Blank reports whether a cell holds no usable value.
func Blank(v any) bool {
	if v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}
