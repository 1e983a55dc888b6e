// Package cellparse converts loosely typed spreadsheet cells into Go values.
//
// Every helper returns the parsed value together with a defaulted flag. A
// malformed cell never produces an error: it yields a zero-equivalent value
// and defaulted=true, so callers that need strictness can check the flag
// while everyone else keeps the lenient behaviour.
package cellparse

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// serialUnixOffset is the spreadsheet serial number of 1970-01-01.
// Serial day 0 is 1899-12-30.
const serialUnixOffset = 25569

const secondsPerDay = 24 * 60 * 60

const maxExactFloat = 1 << 53

// String renders a cell as text. Numbers are formatted without a trailing
// ".0" so that ids stored as numbers compare equal to their string form.
func String(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(c), 'f', -1, 32)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case bool:
		return strconv.FormatBool(c)
	default:
		return ""
	}
}

// IsBlank reports whether the cell holds nothing but whitespace.
func IsBlank(v interface{}) bool {
	return strings.TrimSpace(String(v)) == ""
}

// Int parses a whole number. Fractions are truncated toward zero and
// thousands separators are ignored.
func Int(v interface{}) (int, bool) {
	f, defaulted := Float(v)
	if defaulted {
		return 0, true
	}
	// Beyond 2^53 a float no longer holds every whole number.
	if f > maxExactFloat || f < -maxExactFloat {
		return 0, true
	}
	return int(f), false
}

// Float parses a decimal number. NaN and infinities are coerced to 0.
func Float(v interface{}) (float64, bool) {
	var f float64
	switch c := v.(type) {
	case float64:
		f = c
	case float32:
		f = float64(c)
	case int:
		f = float64(c)
	case int64:
		f = float64(c)
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(c), ",", "")
		if s == "" {
			return 0, true
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, true
		}
		f = parsed
	default:
		return 0, true
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true
	}
	return f, false
}

// Amount parses a money cell such as "৳2,500.50" by dropping every
// character other than digits, '.' and '-'. Unparsable cells are zero.
func Amount(v interface{}) (decimal.Decimal, bool) {
	switch c := v.(type) {
	case float64:
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return decimal.Zero, true
		}
		return decimal.NewFromFloat(c), false
	case int:
		return decimal.NewFromInt(int64(c)), false
	}

	var b strings.Builder
	for _, r := range String(v) {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}

// FromSerial converts a spreadsheet serial day count into a UTC time.
// Fractional days carry the time of day.
func FromSerial(days float64) (time.Time, bool) {
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return time.Time{}, false
	}
	secs := (days - serialUnixOffset) * secondsPerDay
	// Keep the result inside years 1..9999 so it formats as ISO-8601.
	if secs < -62135596800 || secs > 253402300799 {
		return time.Time{}, false
	}
	whole := math.Floor(secs)
	nanos := math.Round((secs - whole) * 1e9)
	return time.Unix(int64(whole), int64(nanos)).UTC(), true
}

// ToSerial is the inverse of FromSerial.
func ToSerial(t time.Time) float64 {
	return float64(t.UTC().UnixNano())/1e9/secondsPerDay + serialUnixOffset
}

// Date normalises a date cell to an ISO-8601 string.
//
// Empty cells yield nil (not defaulted). Numbers, and strings holding only a
// number, are read as serial day counts, except all-digit strings shaped like
// an ISO-8601 year (2024), ordinal date (2024015) or basic date (20240115),
// which pass through. Any other string is returned
// unchanged. A serial that does not map to a valid date yields nil with
// defaulted=true.
func Date(v interface{}) (*string, bool) {
	var days float64
	switch c := v.(type) {
	case nil:
		return nil, false
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			return nil, false
		}
		if isoDigits(s) {
			return &c, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &c, false
		}
		days = f
	default:
		f, defaulted := Float(v)
		if defaulted {
			return nil, true
		}
		days = f
	}

	t, ok := FromSerial(days)
	if !ok {
		return nil, true
	}
	iso := t.Format(time.RFC3339)
	return &iso, false
}

// isoDigits reports whether s is made only of digits and has the length of
// an ISO-8601 year, basic ordinal date or basic calendar date.
func isoDigits(s string) bool {
	switch len(s) {
	case 4, 7, 8:
	default:
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
