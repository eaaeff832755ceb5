// Package schedule implements the roster's scheduling core: booked visit
// slots, per-client recurrence state, and the overdue-client (lead)
// selection rules. The package is pure computation over immutable values;
// "today" is always an explicit parameter, never a clock read.
package schedule

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidBooking indicates a booking string did not match the expected grammar.
var ErrInvalidBooking = errors.New(`schedule: booking must be in the form "YYYY-MM-DD am" or "YYYY-MM-DD pm"`)

// Slot is the coarse half-day granularity of a booked visit.
type Slot string

const (
	// SlotAM marks a morning visit.
	SlotAM Slot = "am"
	// SlotPM marks an afternoon visit.
	SlotPM Slot = "pm"
)

// Booking is one reserved visit: a calendar date plus an am/pm tag. It is an
// immutable value; both fields are always present.
type Booking struct {
	date Date
	slot Slot
}

// NewBooking constructs a booking from already-validated components.
func NewBooking(date Date, slot Slot) Booking {
	return Booking{date: date, slot: slot}
}

// ParseBooking parses the exact form "YYYY-MM-DD am" or "YYYY-MM-DD pm":
// single space separator, lowercase tag, nothing before or after. Any other
// shape is rejected with ErrInvalidBooking.
func ParseBooking(text string) (Booking, error) {
	parts := strings.Split(text, " ")
	if len(parts) != 2 {
		return Booking{}, fmt.Errorf("%w: got %q", ErrInvalidBooking, text)
	}

	date, err := ParseDate(parts[0])
	if err != nil {
		return Booking{}, fmt.Errorf("%w: got %q", ErrInvalidBooking, text)
	}

	slot := Slot(parts[1])
	if slot != SlotAM && slot != SlotPM {
		return Booking{}, fmt.Errorf("%w: got %q", ErrInvalidBooking, text)
	}

	return Booking{date: date, slot: slot}, nil
}

// Date returns the booked calendar date.
func (b Booking) Date() Date { return b.date }

// Slot returns the booked half-day tag.
func (b Booking) Slot() Slot { return b.slot }

// Format renders the canonical round-trip form, "YYYY-MM-DD am|pm".
func (b Booking) Format() string {
	return b.date.String() + " " + string(b.slot)
}

// Compare orders bookings by date first, then by slot ("am" before "pm").
func (b Booking) Compare(other Booking) int {
	if c := b.date.Compare(other.date); c != 0 {
		return c
	}
	return strings.Compare(string(b.slot), string(other.slot))
}

// Equal reports whether two bookings name the same date and slot.
func (b Booking) Equal(other Booking) bool {
	return b.date == other.date && b.slot == other.slot
}
