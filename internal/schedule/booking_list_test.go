package schedule

import (
	"errors"
	"testing"
)

func mustList(t *testing.T, texts ...string) BookingList {
	t.Helper()
	list := BookingList{}
	for _, text := range texts {
		text := text
		next, _, err := list.Add(text)
		if err != nil {
			t.Fatalf("Add(%q) failed: %v", text, err)
		}
		list = next
	}
	return list
}

func TestBookingList_HasConflict(t *testing.T) {
	t.Parallel()

	list := mustList(t, "2024-05-12 am")

	conflict, err := list.HasConflict("2024-05-12 am")
	if err != nil {
		t.Fatalf("HasConflict failed: %v", err)
	}
	if !conflict {
		t.Error("expected conflict for identical date and slot")
	}

	conflict, err = list.HasConflict("2024-05-12 pm")
	if err != nil {
		t.Fatalf("HasConflict failed: %v", err)
	}
	if conflict {
		t.Error("same date in a different slot must not conflict")
	}

	if _, err := list.HasConflict("not a booking"); !errors.Is(err, ErrInvalidBooking) {
		t.Errorf("HasConflict on malformed text = %v, want ErrInvalidBooking", err)
	}
}

func TestBookingList_AddRejectsDuplicates(t *testing.T) {
	t.Parallel()

	list := mustList(t, "2024-05-12 am")

	if _, _, err := list.Add("2024-05-12 am"); !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("Add duplicate = %v, want ErrDuplicateBooking", err)
	}

	// Conflict symmetry: a booking just added is immediately reported.
	next, _, err := list.Add("2024-06-01 pm")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	conflict, err := next.HasConflict("2024-06-01 pm")
	if err != nil {
		t.Fatalf("HasConflict failed: %v", err)
	}
	if !conflict {
		t.Error("expected HasConflict to report a booking just added")
	}
}

func TestBookingList_AddDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	original := mustList(t, "2024-05-12 am")
	if _, _, err := original.Add("2024-05-13 am"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if original.Len() != 1 {
		t.Errorf("receiver length changed to %d, want 1", original.Len())
	}
}

func TestBookingList_IsValidPosition(t *testing.T) {
	t.Parallel()

	list := mustList(t, "2024-05-12 am", "2024-05-13 pm")

	cases := []struct {
		position int
		want     bool
	}{
		{position: -1, want: false},
		{position: 0, want: false},
		{position: 1, want: true},
		{position: 2, want: true},
		{position: 3, want: false},
	}

	for _, tc := range cases {
		tc := tc
		if got := list.IsValidPosition(tc.position); got != tc.want {
			t.Errorf("IsValidPosition(%d) = %v, want %v", tc.position, got, tc.want)
		}
	}

	empty := BookingList{}
	if empty.IsValidPosition(1) {
		t.Error("IsValidPosition(1) on empty list should be false")
	}
}

func TestBookingList_DeleteAt(t *testing.T) {
	t.Parallel()

	list := mustList(t, "2024-05-12 am", "2024-05-13 pm", "2024-05-14 am")

	next, removed, err := list.DeleteAt(2)
	if err != nil {
		t.Fatalf("DeleteAt failed: %v", err)
	}
	if removed.Format() != "2024-05-13 pm" {
		t.Errorf("removed %q, want %q", removed.Format(), "2024-05-13 pm")
	}
	if next.Len() != 2 {
		t.Errorf("length after delete = %d, want 2", next.Len())
	}
	if list.Len() != 3 {
		t.Errorf("receiver mutated: length = %d, want 3", list.Len())
	}

	// Position zero is rejected regardless of list size.
	for _, l := range []BookingList{list, {}} {
		l := l
		if _, _, err := l.DeleteAt(0); !errors.Is(err, ErrPositionOutOfRange) {
			t.Errorf("DeleteAt(0) = %v, want ErrPositionOutOfRange", err)
		}
	}

	if _, _, err := list.DeleteAt(4); !errors.Is(err, ErrPositionOutOfRange) {
		t.Errorf("DeleteAt(4) = %v, want ErrPositionOutOfRange", err)
	}
}

func TestBookingList_SortedPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	list := mustList(t, "2024-06-01 pm", "2024-05-12 am", "2024-06-01 am")

	sorted := list.Sorted()
	wantSorted := []string{"2024-05-12 am", "2024-06-01 am", "2024-06-01 pm"}
	for i, b := range sorted {
		if b.Format() != wantSorted[i] {
			t.Errorf("Sorted()[%d] = %q, want %q", i, b.Format(), wantSorted[i])
		}
	}

	// Listing must not reorder the stored entries.
	entries := list.Entries()
	wantInsertion := []string{"2024-06-01 pm", "2024-05-12 am", "2024-06-01 am"}
	for i, b := range entries {
		if b.Format() != wantInsertion[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, b.Format(), wantInsertion[i])
		}
	}
}

func TestBookingList_Describe(t *testing.T) {
	t.Parallel()

	list := mustList(t, "2024-06-01 pm", "2024-05-12 am")

	want := "1. 2024-05-12 am\n2. 2024-06-01 pm"
	if got := list.Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}

	if got := (BookingList{}).Describe(); got != "" {
		t.Errorf("Describe() on empty list = %q, want empty", got)
	}
}
