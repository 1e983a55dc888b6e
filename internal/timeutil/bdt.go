package timeutil

import (
	"time"
)

// BDT is the Bangladesh Standard Time location (UTC+6)
var BDT *time.Location

func init() {
	var err error
	BDT, err = time.LoadLocation("Asia/Dhaka")
	if err != nil {
		// Fallback: create fixed zone if Asia/Dhaka not available
		BDT = time.FixedZone("BDT", 6*60*60) // UTC+6
	}
}

// Now returns the current time in BDT
func Now() time.Time {
	return time.Now().In(BDT)
}

// ToBDT converts any time to BDT
func ToBDT(t time.Time) time.Time {
	return t.In(BDT)
}

// FormatBDT formats a time in BDT using the given layout
func FormatBDT(t time.Time, layout string) string {
	return t.In(BDT).Format(layout)
}

// StartOfDay returns the start of day (00:00:00) in BDT for the given time
func StartOfDay(t time.Time) time.Time {
	b := t.In(BDT)
	return time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, BDT)
}

// Common layouts for BDT formatting
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	DisplayLayout  = "02 Jan 2006, 03:04 PM"
	FileLayout     = "2006-01-02T150405"
)
