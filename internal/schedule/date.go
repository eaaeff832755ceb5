package schedule

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate indicates a date did not match the YYYY-MM-DD calendar form.
var ErrInvalidDate = errors.New(`schedule: date must be a valid calendar date in the form "YYYY-MM-DD"`)

const dateLayout = "2006-01-02"

// Date is a civil calendar date with no timezone or time-of-day component.
// The zero value is not a meaningful date; use ParseDate or NewDate.
type Date struct {
	year  int
	month time.Month
	day   int
}

// MaxDate is the sentinel used for "never due" computations. It sorts after
// every representable service date.
var MaxDate = Date{year: 9999, month: time.December, day: 31}

// NewDate constructs a date from its components, normalizing out-of-range
// values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// ParseDate parses a YYYY-MM-DD string into a Date. Inputs that match the
// shape but name an impossible day (such as February 30th) are rejected.
func ParseDate(text string) (Date, error) {
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return Date{}, fmt.Errorf("%w: got %q", ErrInvalidDate, text)
	}
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}, nil
}

// DateOf truncates an instant to the civil date observed at that instant's
// location. Callers inject "today" through this rather than the engine ever
// reading a clock.
func DateOf(t time.Time) Date {
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

// Year returns the calendar year.
func (d Date) Year() int { return d.year }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month.
func (d Date) Day() int { return d.day }

// IsZero reports whether the date is the uninitialized zero value.
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// String renders the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}

// Compare orders dates chronologically, returning -1, 0 or 1.
func (d Date) Compare(other Date) int {
	switch {
	case d.year != other.year:
		return compareInt(d.year, other.year)
	case d.month != other.month:
		return compareInt(int(d.month), int(other.month))
	default:
		return compareInt(d.day, other.day)
	}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Add shifts the date by a calendar period. Arithmetic follows time.AddDate
// normalization, so 2024-01-30 plus two months is 2024-03-30.
func (d Date) Add(p Period) Date {
	t := time.Date(d.year+p.Years, d.month+time.Month(p.Months), d.day+p.Days+7*p.Weeks, 0, 0, 0, 0, time.UTC)
	return Date{year: t.Year(), month: t.Month(), day: t.Day()}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
