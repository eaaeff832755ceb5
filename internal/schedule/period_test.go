package schedule

import (
	"errors"
	"testing"
)

func TestParsePeriod_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{"P2M", "P1Y", "P3W", "P10D", "P1Y2M3W4D", "P0D"}

	for _, input := range inputs {
		input := input
		p, err := ParsePeriod(input)
		if err != nil {
			t.Fatalf("ParsePeriod(%q) failed: %v", input, err)
		}
		if got := p.String(); got != input {
			t.Errorf("String() = %q, want %q", got, input)
		}
	}
}

func TestParsePeriod_RejectsMalformedInput(t *testing.T) {
	t.Parallel()

	inputs := []string{"", "P", "2M", "P2X", "PM", "P-2M", "P2M3Y", "p2m"}

	for _, input := range inputs {
		input := input
		if _, err := ParsePeriod(input); !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("ParsePeriod(%q) = %v, want ErrInvalidPeriod", input, err)
		}
	}
}

func TestPeriodOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		count int
		unit  string
		want  Period
	}{
		{count: 3, unit: "days", want: Period{Days: 3}},
		{count: 2, unit: "weeks", want: Period{Weeks: 2}},
		{count: 6, unit: "months", want: Period{Months: 6}},
		{count: 1, unit: "years", want: Period{Years: 1}},
	}

	for _, tc := range cases {
		tc := tc
		got, err := PeriodOf(tc.count, tc.unit)
		if err != nil {
			t.Fatalf("PeriodOf(%d, %q) failed: %v", tc.count, tc.unit, err)
		}
		if got != tc.want {
			t.Errorf("PeriodOf(%d, %q) = %v, want %v", tc.count, tc.unit, got, tc.want)
		}
	}

	if _, err := PeriodOf(1, "day"); !errors.Is(err, ErrInvalidPeriodUnit) {
		t.Errorf("PeriodOf singular unit = %v, want ErrInvalidPeriodUnit", err)
	}
}

func TestPeriod_Plus(t *testing.T) {
	t.Parallel()

	sum := Period{Months: 1}.Plus(Period{Weeks: 2, Days: 1}).Plus(Period{Months: 1})
	want := Period{Months: 2, Weeks: 2, Days: 1}
	if sum != want {
		t.Errorf("Plus chain = %v, want %v", sum, want)
	}
}

func TestPeriod_Describe(t *testing.T) {
	t.Parallel()

	cases := []struct {
		period Period
		want   string
	}{
		{period: Period{}, want: "0 days"},
		{period: Period{Months: 2}, want: "2 months"},
		{period: Period{Months: 1}, want: "1 month"},
		{period: Period{Years: 1, Weeks: 2}, want: "1 year 2 weeks"},
	}

	for _, tc := range cases {
		tc := tc
		if got := tc.period.Describe(); got != tc.want {
			t.Errorf("Describe(%v) = %q, want %q", tc.period, got, tc.want)
		}
	}
}
