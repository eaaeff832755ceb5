package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidDetails indicates a recurrence entry did not match the expected grammar.
	ErrInvalidDetails = errors.New(`schedule: housekeeping details must be in the form "YYYY-MM-DD <number> (days|weeks|months|years)"`)
	// ErrCorruptDetails indicates a stored details record could not be decoded.
	// This only arises from corrupted storage and is not user-correctable.
	ErrCorruptDetails = errors.New("schedule: stored housekeeping details are corrupt")
)

const nullToken = "null"

var userInputPattern = regexp.MustCompile(`^(\S+) (\d+) (\S+)$`)

// HousekeepingDetails is one client's recurrence state: the last service
// date, the preferred interval between services, the accumulated deferment,
// and at most one upcoming booking.
//
// The value with all four fields absent is the distinguished "empty"
// sentinel meaning no recurrence is configured; Empty constructs it and
// IsEmpty tests for it. Every mutating operation returns a new value.
type HousekeepingDetails struct {
	lastService *Date
	interval    *Period
	deferment   *Period
	booking     *Booking
}

// Empty returns the sentinel details value with no recurrence configured.
func Empty() HousekeepingDetails {
	return HousekeepingDetails{}
}

// NewDetails builds details from a last service date and preferred interval.
// Deferment starts at zero and no booking is attached.
func NewDetails(lastService Date, interval Period) HousekeepingDetails {
	zero := Period{}
	return HousekeepingDetails{
		lastService: &lastService,
		interval:    &interval,
		deferment:   &zero,
	}
}

// ParseDetailsUserInput parses the form typed by an operator,
// "YYYY-MM-DD <number> (days|weeks|months|years)". Any deviation is
// rejected with ErrInvalidDetails.
func ParseDetailsUserInput(text string) (HousekeepingDetails, error) {
	match := userInputPattern.FindStringSubmatch(text)
	if match == nil {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrInvalidDetails, text)
	}

	lastService, err := ParseDate(match[1])
	if err != nil {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrInvalidDetails, text)
	}

	count, err := strconv.Atoi(match[2])
	if err != nil {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrInvalidDetails, text)
	}

	interval, err := PeriodOf(count, match[3])
	if err != nil {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrInvalidDetails, text)
	}

	return NewDetails(lastService, interval), nil
}

// ParseDetailsStorageForm decodes the persisted representation: the literal
// token "null" for the empty sentinel, or
// "<lastDate> <interval> (null|<booking>) <deferment>" with periods in
// ISO-8601 designator form. Anything else fails loudly with
// ErrCorruptDetails; storage corruption is never silently repaired.
func ParseDetailsStorageForm(text string) (HousekeepingDetails, error) {
	if text == nullToken {
		return Empty(), nil
	}

	tokens := strings.Split(text, " ")
	// Four tokens when no booking is attached, five when the embedded
	// booking contributes its own "date tag" pair.
	if len(tokens) != 4 && len(tokens) != 5 {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrCorruptDetails, text)
	}

	lastService, err := ParseDate(tokens[0])
	if err != nil {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrCorruptDetails, text)
	}

	interval, err := ParsePeriod(tokens[1])
	if err != nil {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrCorruptDetails, text)
	}

	var booking *Booking
	defermentToken := tokens[3]
	switch len(tokens) {
	case 4:
		if tokens[2] != nullToken {
			return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrCorruptDetails, text)
		}
	case 5:
		parsed, err := ParseBooking(tokens[2] + " " + tokens[3])
		if err != nil {
			return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrCorruptDetails, text)
		}
		booking = &parsed
		defermentToken = tokens[4]
	}

	deferment, err := ParsePeriod(defermentToken)
	if err != nil {
		return HousekeepingDetails{}, fmt.Errorf("%w: got %q", ErrCorruptDetails, text)
	}

	return HousekeepingDetails{
		lastService: &lastService,
		interval:    &interval,
		deferment:   &deferment,
		booking:     booking,
	}, nil
}

// IsEmpty reports whether the value is the empty sentinel. Callers compare
// against the sentinel as a whole rather than probing individual fields.
func (d HousekeepingDetails) IsEmpty() bool {
	return d.Equal(Empty())
}

// HasDetails reports whether any recurrence is configured.
func (d HousekeepingDetails) HasDetails() bool {
	return !d.IsEmpty()
}

// LastServiceDate returns the last service date, if configured.
func (d HousekeepingDetails) LastServiceDate() (Date, bool) {
	if d.lastService == nil {
		return Date{}, false
	}
	return *d.lastService, true
}

// Interval returns the preferred service interval, if configured.
func (d HousekeepingDetails) Interval() (Period, bool) {
	if d.interval == nil {
		return Period{}, false
	}
	return *d.interval, true
}

// Deferment returns the accumulated deferment, if configured.
func (d HousekeepingDetails) Deferment() (Period, bool) {
	if d.deferment == nil {
		return Period{}, false
	}
	return *d.deferment, true
}

// Booking returns the embedded upcoming booking, if present.
func (d HousekeepingDetails) Booking() (Booking, bool) {
	if d.booking == nil {
		return Booking{}, false
	}
	return *d.booking, true
}

// NextDueDate predicts when the client is next due:
// lastService + interval + deferment. When any input is absent the result is
// MaxDate, i.e. never due.
func (d HousekeepingDetails) NextDueDate() Date {
	if d.lastService == nil || d.interval == nil || d.deferment == nil {
		return MaxDate
	}
	return d.lastService.Add(*d.interval).Add(*d.deferment)
}

// HasActiveBooking reports whether a booking exists with a date strictly
// after today. A same-day or past booking has already happened and must not
// suppress a fresh lead.
func (d HousekeepingDetails) HasActiveBooking(today Date) bool {
	return d.booking != nil && d.booking.Date().After(today)
}

// WithBooking returns a copy carrying the given upcoming booking.
func (d HousekeepingDetails) WithBooking(b Booking) HousekeepingDetails {
	out := d
	out.booking = &b
	return out
}

// WithoutBooking returns a copy with no upcoming booking.
func (d HousekeepingDetails) WithoutBooking() HousekeepingDetails {
	out := d
	out.booking = nil
	return out
}

// Deferred returns a copy with the given period accumulated onto the
// existing deferment. Deferment only grows; the sole way back to zero is
// constructing fresh details.
func (d HousekeepingDetails) Deferred(p Period) HousekeepingDetails {
	out := d
	current := Period{}
	if d.deferment != nil {
		current = *d.deferment
	}
	total := current.Plus(p)
	out.deferment = &total
	return out
}

// Compare orders details by predicted next due date ascending. Empty details
// carry the MaxDate sentinel and therefore sort last.
func (d HousekeepingDetails) Compare(other HousekeepingDetails) int {
	return d.NextDueDate().Compare(other.NextDueDate())
}

// Equal reports structural equality across all four fields.
func (d HousekeepingDetails) Equal(other HousekeepingDetails) bool {
	if !equalPtr(d.lastService, other.lastService, func(a, b Date) bool { return a == b }) {
		return false
	}
	if !equalPtr(d.interval, other.interval, func(a, b Period) bool { return a == b }) {
		return false
	}
	if !equalPtr(d.deferment, other.deferment, func(a, b Period) bool { return a == b }) {
		return false
	}
	return equalPtr(d.booking, other.booking, Booking.Equal)
}

// StorageText renders the persisted representation consumed by
// ParseDetailsStorageForm. Output always round-trips.
func (d HousekeepingDetails) StorageText() string {
	if d.IsEmpty() {
		return nullToken
	}

	bookingText := nullToken
	if d.booking != nil {
		bookingText = d.booking.Format()
	}
	return fmt.Sprintf("%s %s %s %s", d.lastService, d.interval, bookingText, d.deferment)
}

// Describe renders the operator-facing summary without the deferment
// component.
func (d HousekeepingDetails) Describe() string {
	return d.describe(false)
}

// DescribeWithDeferment renders the operator-facing summary including any
// non-zero deferment.
func (d HousekeepingDetails) DescribeWithDeferment() string {
	return d.describe(true)
}

func (d HousekeepingDetails) describe(withDeferment bool) string {
	if d.IsEmpty() {
		return "no housekeeping scheduled"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "last serviced %s, every %s", d.lastService, d.interval.Describe())
	if withDeferment && d.deferment != nil && !d.deferment.IsZero() {
		fmt.Fprintf(&b, ", deferred %s", d.deferment.Describe())
	}
	fmt.Fprintf(&b, ", next due %s", d.NextDueDate())
	if d.booking != nil {
		fmt.Fprintf(&b, ", booked %s", d.booking.Format())
	}
	return b.String()
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}
