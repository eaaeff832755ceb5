package schedule

import (
	"errors"
	"testing"
)

func mustDetails(t *testing.T, userInput string) HousekeepingDetails {
	t.Helper()
	d, err := ParseDetailsUserInput(userInput)
	if err != nil {
		t.Fatalf("ParseDetailsUserInput(%q) failed: %v", userInput, err)
	}
	return d
}

func TestParseDetailsUserInput(t *testing.T) {
	t.Parallel()

	d := mustDetails(t, "2024-01-30 2 months")

	last, ok := d.LastServiceDate()
	if !ok || last.String() != "2024-01-30" {
		t.Errorf("LastServiceDate() = %v, %v; want 2024-01-30", last, ok)
	}
	interval, ok := d.Interval()
	if !ok || interval != (Period{Months: 2}) {
		t.Errorf("Interval() = %v, %v; want 2 months", interval, ok)
	}
	deferment, ok := d.Deferment()
	if !ok || !deferment.IsZero() {
		t.Errorf("Deferment() = %v, %v; want zero", deferment, ok)
	}
	if _, ok := d.Booking(); ok {
		t.Error("fresh details should carry no booking")
	}
}

func TestParseDetailsUserInput_RejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{name: "missing unit", input: "2024-01-30 2"},
		{name: "non integer quantity", input: "2024-01-30 two months"},
		{name: "negative quantity", input: "2024-01-30 -2 months"},
		{name: "unknown unit", input: "2024-01-30 2 fortnights"},
		{name: "wrong date shape", input: "30-01-2024 2 months"},
		{name: "extra tokens", input: "2024-01-30 2 months extra"},
		{name: "empty", input: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseDetailsUserInput(tc.input); !errors.Is(err, ErrInvalidDetails) {
				t.Fatalf("ParseDetailsUserInput(%q) = %v, want ErrInvalidDetails", tc.input, err)
			}
		})
	}
}

func TestDetails_NextDueDate(t *testing.T) {
	t.Parallel()

	d := mustDetails(t, "2024-01-30 2 months")
	if got := d.NextDueDate(); got.String() != "2024-03-30" {
		t.Errorf("NextDueDate() = %s, want 2024-03-30", got)
	}

	if got := Empty().NextDueDate(); got != MaxDate {
		t.Errorf("NextDueDate() on empty details = %s, want MaxDate", got)
	}
}

func TestDetails_DefermentIsMonotonic(t *testing.T) {
	t.Parallel()

	d := mustDetails(t, "2024-01-30 2 months")
	previous := d.NextDueDate()

	increments := []Period{{Days: 3}, {Weeks: 1}, {Months: 1}, {}}
	for _, inc := range increments {
		inc := inc
		d = d.Deferred(inc)
		due := d.NextDueDate()
		if due.Before(previous) {
			t.Fatalf("deferment by %s moved due date backwards: %s -> %s", inc, previous, due)
		}
		previous = due
	}

	deferment, _ := d.Deferment()
	want := Period{Months: 1, Weeks: 1, Days: 3}
	if deferment != want {
		t.Errorf("accumulated deferment = %v, want %v", deferment, want)
	}
}

func TestDetails_HasActiveBooking(t *testing.T) {
	t.Parallel()

	today := mustDate(t, "2024-05-12")
	base := mustDetails(t, "2024-01-30 2 months")

	cases := []struct {
		name    string
		booking string
		want    bool
	}{
		{name: "future booking is active", booking: "2024-05-13 am", want: true},
		{name: "same-day booking is not active", booking: "2024-05-12 pm", want: false},
		{name: "past booking is not active", booking: "2024-05-01 am", want: false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			d := base.WithBooking(mustBooking(t, tc.booking))
			if got := d.HasActiveBooking(today); got != tc.want {
				t.Errorf("HasActiveBooking(%s) with %q = %v, want %v", today, tc.booking, got, tc.want)
			}
		})
	}

	if base.HasActiveBooking(today) {
		t.Error("details without a booking should never be actively booked")
	}
	if base.WithBooking(mustBooking(t, "2099-01-01 am")).WithoutBooking().HasActiveBooking(today) {
		t.Error("WithoutBooking should clear the active booking")
	}
}

func TestDetails_StorageRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		details HousekeepingDetails
		want    string
	}{
		{
			name:    "empty sentinel",
			details: Empty(),
			want:    "null",
		},
		{
			name:    "no booking",
			details: mustDetails(t, "2024-01-30 2 months"),
			want:    "2024-01-30 P2M null P0D",
		},
		{
			name:    "with booking and deferment",
			details: mustDetails(t, "2024-01-30 2 months").WithBooking(mustBooking(t, "2024-05-12 am")).Deferred(Period{Weeks: 1}),
			want:    "2024-01-30 P2M 2024-05-12 am P1W",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			text := tc.details.StorageText()
			if text != tc.want {
				t.Fatalf("StorageText() = %q, want %q", text, tc.want)
			}

			parsed, err := ParseDetailsStorageForm(text)
			if err != nil {
				t.Fatalf("ParseDetailsStorageForm(%q) failed: %v", text, err)
			}
			if !parsed.Equal(tc.details) {
				t.Errorf("round trip mismatch: got %q", parsed.StorageText())
			}
		})
	}
}

func TestParseDetailsStorageForm_FailsLoudlyOnCorruptInput(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
	}{
		{name: "truncated", input: "2024-01-30 P2M"},
		{name: "bad period", input: "2024-01-30 2months null P0D"},
		{name: "bare P period", input: "2024-01-30 P null P0D"},
		{name: "half booking", input: "2024-01-30 P2M 2024-05-12 P0D"},
		{name: "bad booking slot", input: "2024-01-30 P2M 2024-05-12 noon P0D"},
		{name: "missing deferment", input: "2024-01-30 P2M 2024-05-12 am"},
		{name: "extra tokens", input: "2024-01-30 P2M null P0D extra here"},
		{name: "empty string", input: ""},
		{name: "capitalized null", input: "NULL"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseDetailsStorageForm(tc.input); !errors.Is(err, ErrCorruptDetails) {
				t.Fatalf("ParseDetailsStorageForm(%q) = %v, want ErrCorruptDetails", tc.input, err)
			}
		})
	}
}

func TestDetails_EmptySentinel(t *testing.T) {
	t.Parallel()

	parsed, err := ParseDetailsStorageForm("null")
	if err != nil {
		t.Fatalf("ParseDetailsStorageForm(\"null\") failed: %v", err)
	}
	if !parsed.Equal(Empty()) {
		t.Error("storage token \"null\" should decode to the empty sentinel")
	}
	if !Empty().IsEmpty() {
		t.Error("Empty().IsEmpty() should be true")
	}
	if Empty().HasDetails() {
		t.Error("Empty().HasDetails() should be false")
	}
	if mustDetails(t, "2024-01-30 2 months").IsEmpty() {
		t.Error("configured details must not compare equal to the sentinel")
	}
}

func TestDetails_CompareFollowsNextDueDate(t *testing.T) {
	t.Parallel()

	early := mustDetails(t, "2024-01-01 1 weeks")
	late := mustDetails(t, "2024-06-01 2 months")

	if early.Compare(late) >= 0 {
		t.Error("earlier due date should order first")
	}
	if late.Compare(early) <= 0 {
		t.Error("later due date should order last")
	}
	if early.Compare(early) != 0 {
		t.Error("identical details should compare equal")
	}
	if early.Compare(Empty()) >= 0 {
		t.Error("empty details carry the max sentinel and must sort last")
	}
}

func TestDetails_Describe(t *testing.T) {
	t.Parallel()

	d := mustDetails(t, "2024-01-30 2 months").Deferred(Period{Weeks: 1})

	plain := d.Describe()
	if plain != "last serviced 2024-01-30, every 2 months, next due 2024-04-06" {
		t.Errorf("Describe() = %q", plain)
	}

	withDeferment := d.DescribeWithDeferment()
	if withDeferment != "last serviced 2024-01-30, every 2 months, deferred 1 week, next due 2024-04-06" {
		t.Errorf("DescribeWithDeferment() = %q", withDeferment)
	}

	if got := Empty().Describe(); got != "no housekeeping scheduled" {
		t.Errorf("Describe() on empty details = %q", got)
	}

	booked := d.WithBooking(mustBooking(t, "2024-04-10 am"))
	if got := booked.Describe(); got != "last serviced 2024-01-30, every 2 months, next due 2024-04-06, booked 2024-04-10 am" {
		t.Errorf("Describe() with booking = %q", got)
	}
}
