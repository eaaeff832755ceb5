package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrDuplicateBooking indicates the exact date and slot is already reserved.
	ErrDuplicateBooking = errors.New("schedule: booking already exists for that date and slot")
	// ErrPositionOutOfRange indicates a one-based booking position outside [1, size].
	ErrPositionOutOfRange = errors.New("schedule: booking position is out of range")
)

// BookingList is the ordered collection of bookings owned by one housekeeper.
// It is a value type: mutating operations return a new list, so an edited
// housekeeper is always replaced wholesale rather than changed in place.
//
// A list never holds two bookings for the same date and slot; Add enforces
// this as an invariant. Two bookings on the same date in different slots do
// not conflict.
type BookingList struct {
	entries []Booking
}

// NewBookingList builds a list from the given bookings, preserving order.
// Duplicates in the input are an error.
func NewBookingList(bookings ...Booking) (BookingList, error) {
	list := BookingList{}
	for _, b := range bookings {
		next, err := list.AddBooking(b)
		if err != nil {
			return BookingList{}, err
		}
		list = next
	}
	return list, nil
}

// Len returns the number of bookings held.
func (l BookingList) Len() int { return len(l.entries) }

// Entries returns a copy of the bookings in insertion order.
func (l BookingList) Entries() []Booking {
	out := make([]Booking, len(l.entries))
	copy(out, l.entries)
	return out
}

// Contains reports whether an equal booking (same date and slot) is held.
func (l BookingList) Contains(b Booking) bool {
	for _, existing := range l.entries {
		if existing.Equal(b) {
			return true
		}
	}
	return false
}

// HasConflict parses text and reports whether an equal booking already
// exists. A malformed input propagates the parse error.
func (l BookingList) HasConflict(text string) (bool, error) {
	b, err := ParseBooking(text)
	if err != nil {
		return false, err
	}
	return l.Contains(b), nil
}

// Add parses text and appends the resulting booking, returning the extended
// list and the booking itself. Adding a duplicate date and slot fails with
// ErrDuplicateBooking.
func (l BookingList) Add(text string) (BookingList, Booking, error) {
	b, err := ParseBooking(text)
	if err != nil {
		return BookingList{}, Booking{}, err
	}
	next, err := l.AddBooking(b)
	if err != nil {
		return BookingList{}, Booking{}, err
	}
	return next, b, nil
}

// AddBooking appends an already-parsed booking under the same duplicate rule
// as Add.
func (l BookingList) AddBooking(b Booking) (BookingList, error) {
	if l.Contains(b) {
		return BookingList{}, fmt.Errorf("%w: %s", ErrDuplicateBooking, b.Format())
	}
	entries := make([]Booking, 0, len(l.entries)+1)
	entries = append(entries, l.entries...)
	entries = append(entries, b)
	return BookingList{entries: entries}, nil
}

// IsValidPosition reports whether a one-based position falls within
// [1, Len()]. This is the single range check used by every caller; position
// zero fails the lower bound like any other out-of-range value.
func (l BookingList) IsValidPosition(position int) bool {
	return position >= 1 && position <= len(l.entries)
}

// DeleteAt removes the booking at the given one-based position, returning
// the shortened list and the removed booking. Invalid positions fail with
// ErrPositionOutOfRange rather than panicking.
func (l BookingList) DeleteAt(position int) (BookingList, Booking, error) {
	if !l.IsValidPosition(position) {
		return BookingList{}, Booking{}, fmt.Errorf("%w: %d", ErrPositionOutOfRange, position)
	}

	removed := l.entries[position-1]
	entries := make([]Booking, 0, len(l.entries)-1)
	entries = append(entries, l.entries[:position-1]...)
	entries = append(entries, l.entries[position:]...)
	return BookingList{entries: entries}, removed, nil
}

// Sorted returns the bookings ordered by date then slot. The receiver's
// insertion order is left untouched.
func (l BookingList) Sorted() []Booking {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Compare(out[j]) < 0
	})
	return out
}

// Describe renders a numbered, date-sorted listing, one booking per line.
// An empty list renders as an empty string.
func (l BookingList) Describe() string {
	sorted := l.Sorted()
	lines := make([]string, 0, len(sorted))
	for i, b := range sorted {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, b.Format()))
	}
	return strings.Join(lines, "\n")
}
