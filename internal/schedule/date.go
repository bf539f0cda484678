package schedule

import (
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// startAtLayout is the format written into session start_at fields:
// a local date-time with minute precision and no zone offset.
const startAtLayout = "2006-01-02T15:04"

// Date is a plain calendar date (year, month, day). It carries no time of day
// and no timezone offset; all arithmetic is pure calendar arithmetic.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return Date{Year: now.Year(), Month: now.Month(), Day: now.Day()}
}

// AddDays returns a new Date n days after d, rolling over month and year
// boundaries. Negative n moves backwards. The receiver is not modified.
func (d Date) AddDays(n int) Date {
	// time.Date normalizes out-of-range days, which handles rollover.
	t := time.Date(d.Year, d.Month, d.Day+n, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// AddWeeks returns a new Date n*7 days after d.
func (d Date) AddWeeks(n int) Date {
	return d.AddDays(n * 7)
}

// Weekday returns the weekday index of d, 0 = Sunday through 6 = Saturday.
func (d Date) Weekday() int {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return int(t.Weekday())
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format(DateLayout)
}

// AtTime combines the date with an "HH:mm" time of day into the start_at
// wire format ("YYYY-MM-DDTHH:mm"). timeOfDay is assumed validated.
func (d Date) AtTime(timeOfDay string) string {
	return d.String() + "T" + timeOfDay
}
