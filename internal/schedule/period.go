package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidPeriod indicates a period designator such as "P2M" could not be parsed.
	ErrInvalidPeriod = errors.New(`schedule: period must use the ISO-8601 designator form "P[n]Y[n]M[n]W[n]D"`)
	// ErrInvalidPeriodUnit indicates an interval unit outside days/weeks/months/years.
	ErrInvalidPeriodUnit = errors.New(`schedule: interval unit must be one of "days", "weeks", "months" or "years"`)
)

var periodPattern = regexp.MustCompile(`^P(?:(\d+)Y)?(?:(\d+)M)?(?:(\d+)W)?(?:(\d+)D)?$`)

// Period is a calendar-unit duration. Unlike time.Duration it carries no
// fixed length: adding one month to January 30th lands wherever the calendar
// says it lands.
type Period struct {
	Years  int
	Months int
	Weeks  int
	Days   int
}

// ParsePeriod parses the ISO-8601 designator form used by the storage text,
// for example "P2M" or "P1Y3W". The bare designator "P" is rejected.
func ParsePeriod(text string) (Period, error) {
	match := periodPattern.FindStringSubmatch(text)
	if match == nil || text == "P" {
		return Period{}, fmt.Errorf("%w: got %q", ErrInvalidPeriod, text)
	}

	var p Period
	fields := []*int{&p.Years, &p.Months, &p.Weeks, &p.Days}
	for i, field := range fields {
		if match[i+1] == "" {
			continue
		}
		value, err := strconv.Atoi(match[i+1])
		if err != nil {
			return Period{}, fmt.Errorf("%w: got %q", ErrInvalidPeriod, text)
		}
		*field = value
	}
	return p, nil
}

// PeriodOf builds a period from a count and a user-facing unit name.
func PeriodOf(count int, unit string) (Period, error) {
	switch unit {
	case "days":
		return Period{Days: count}, nil
	case "weeks":
		return Period{Weeks: count}, nil
	case "months":
		return Period{Months: count}, nil
	case "years":
		return Period{Years: count}, nil
	default:
		return Period{}, fmt.Errorf("%w: got %q", ErrInvalidPeriodUnit, unit)
	}
}

// IsZero reports whether every component of the period is zero.
func (p Period) IsZero() bool {
	return p.Years == 0 && p.Months == 0 && p.Weeks == 0 && p.Days == 0
}

// Plus returns the component-wise sum of two periods.
func (p Period) Plus(other Period) Period {
	return Period{
		Years:  p.Years + other.Years,
		Months: p.Months + other.Months,
		Weeks:  p.Weeks + other.Weeks,
		Days:   p.Days + other.Days,
	}
}

// String renders the canonical designator form. The zero period renders as
// "P0D" so that round-tripping through ParsePeriod is total.
func (p Period) String() string {
	if p.IsZero() {
		return "P0D"
	}

	var b strings.Builder
	b.WriteByte('P')
	if p.Years != 0 {
		fmt.Fprintf(&b, "%dY", p.Years)
	}
	if p.Months != 0 {
		fmt.Fprintf(&b, "%dM", p.Months)
	}
	if p.Weeks != 0 {
		fmt.Fprintf(&b, "%dW", p.Weeks)
	}
	if p.Days != 0 {
		fmt.Fprintf(&b, "%dD", p.Days)
	}
	return b.String()
}

// Describe renders a human-readable phrase such as "2 months" or
// "1 year 2 weeks" for roster listings.
func (p Period) Describe() string {
	if p.IsZero() {
		return "0 days"
	}

	parts := make([]string, 0, 4)
	appendPart := func(count int, singular string) {
		if count == 0 {
			return
		}
		unit := singular
		if count != 1 {
			unit += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", count, unit))
	}
	appendPart(p.Years, "year")
	appendPart(p.Months, "month")
	appendPart(p.Weeks, "week")
	appendPart(p.Days, "day")
	return strings.Join(parts, " ")
}
