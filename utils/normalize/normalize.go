// Package normalize converts loosely-typed form and query-string input into
// the typed values the services persist. The coercion rules are deliberately
// permissive: bad input degrades to a default instead of failing the request.
package normalize

import (
	"strconv"
	"strings"
	"time"
)

// Filters reduces raw query values to a sparse map of canonical filter
// fields. keyMap maps incoming query keys to the canonical field name.
// Multi-valued keys are joined with a comma (embedded commas are not
// escaped); absent and empty values are omitted entirely so downstream
// query builders never see an empty constraint.
func Filters(raw map[string][]string, keyMap map[string]string) map[string]string {
	out := make(map[string]string)
	for incoming, canonical := range keyMap {
		values, ok := raw[incoming]
		if !ok {
			continue
		}
		nonEmpty := values[:0:0]
		for _, v := range values {
			if v != "" {
				nonEmpty = append(nonEmpty, v)
			}
		}
		if len(nonEmpty) == 0 {
			continue
		}
		out[canonical] = strings.Join(nonEmpty, ",")
	}
	return out
}

// Bool coerces its input to a bool. Native booleans pass through; of the
// strings only the literal "true" (case-sensitive) is true. Every other
// value, including absence, is false.
func Bool(v interface{}) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true"
	default:
		return false
	}
}

// Number coerces its input to a float, falling back to def when it is not a
// number. JSON numbers arrive as float64 and pass through; strings are
// parsed.
func Number(v interface{}, def float64) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// excelEpoch is day zero of the spreadsheet serial-date scheme.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

var isoLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// nullTokens are the strings users and spreadsheets use for "no date".
var nullTokens = map[string]bool{
	"":     true,
	"null": true,
	"n/a":  true,
	"-":    true,
}

// Date coerces its input to a date. Accepted forms: time.Time values,
// ISO-ish strings, dd.mm.yyyy / dd/mm/yyyy / dd-mm-yyyy, and numeric
// spreadsheet serials (days since 1899-12-30 UTC). Empty, "null", "n/a",
// "-" and anything unparseable all return nil rather than an error.
func Date(v interface{}) *time.Time {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if val.IsZero() {
			return nil
		}
		t := val
		return &t
	case *time.Time:
		return val
	case float64:
		return serialDate(val)
	case int:
		return serialDate(float64(val))
	case int64:
		return serialDate(float64(val))
	case string:
		return dateFromString(val)
	default:
		return nil
	}
}

func serialDate(serial float64) *time.Time {
	if serial <= 0 {
		return nil
	}
	t := excelEpoch.Add(time.Duration(serial * float64(24*time.Hour)))
	return &t
}

func dateFromString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if nullTokens[strings.ToLower(s)] {
		return nil
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}

	if t := dayFirstDate(s); t != nil {
		return t
	}

	// Bare numbers are spreadsheet serials.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return serialDate(serial)
	}

	return nil
}

// dayFirstDate parses dd.mm.yyyy, dd/mm/yyyy and dd-mm-yyyy.
func dayFirstDate(s string) *time.Time {
	var sep string
	switch {
	case strings.Count(s, ".") == 2:
		sep = "."
	case strings.Count(s, "/") == 2:
		sep = "/"
	case strings.Count(s, "-") == 2:
		sep = "-"
	default:
		return nil
	}

	parts := strings.Split(s, sep)
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if day < 1 || day > 31 || month < 1 || month > 12 || year < 1000 {
		return nil
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject overflowed dates like 31.02.2024.
	if t.Day() != day || int(t.Month()) != month {
		return nil
	}
	return &t
}
