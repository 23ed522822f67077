package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseHourInput(t *testing.T) {
	t.Parallel()

	got, err := ParseHourInput(" 2023-01-03 07 ", ":00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2023, 1, 3, 7, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseHourInput_Invalid(t *testing.T) {
	t.Parallel()

	tests := []string{"", "2023-01-03", "03.01.2023 07", "2023-01-03 25"}
	for _, input := range tests {
		if _, err := ParseHourInput(input, ":00:00"); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("expected ErrInvalidPeriod for %q, got %v", input, err)
		}
	}
}

func TestParsePeriodInput_RejectsReversedRange(t *testing.T) {
	t.Parallel()

	if _, err := ParsePeriodInput("2023-01-05 00", "2023-01-03 00", ":00:00"); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestPeriodContainsIsInclusive(t *testing.T) {
	t.Parallel()

	period, err := ParsePeriodInput("2023-01-03 00", "2023-01-05 00", ":00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name  string
		value time.Time
		want  bool
	}{
		{name: "start", value: period.Start, want: true},
		{name: "end", value: period.End, want: true},
		{name: "inside", value: time.Date(2023, 1, 4, 12, 0, 0, 0, time.UTC), want: true},
		{name: "before", value: period.Start.Add(-time.Second), want: false},
		{name: "after", value: period.End.Add(time.Second), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := period.Contains(tt.value); got != tt.want {
				t.Fatalf("Contains(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	want := time.Date(2023, 1, 3, 14, 30, 0, 0, time.UTC)
	tests := []struct {
		name  string
		input string
	}{
		{name: "canonical", input: "2023-01-03 14:30:00"},
		{name: "rfc3339", input: "2023-01-03T14:30:00Z"},
		{name: "iso without zone", input: "2023-01-03T14:30:00"},
		{name: "minutes", input: "2023-01-03 14:30"},
		{name: "german", input: "03.01.2023 14:30"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTimestamp(tc.input)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if !got.Equal(want) {
				t.Fatalf("unexpected time for %q: want %v, got %v", tc.input, want, got)
			}
		})
	}

	if _, err := ParseTimestamp("yesterday"); err == nil {
		t.Fatalf("expected error for unsupported value")
	}
}
