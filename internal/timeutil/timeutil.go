package timeutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLayout is the canonical timestamp layout of dataset rows and period bounds.
const DefaultLayout = "2006-01-02 15:04:05"

var ErrInvalidPeriod = errors.New("invalid period")

// Period is an inclusive time range.
type Period struct {
	Start time.Time
	End   time.Time
}

func NewPeriod(start, end time.Time) (Period, error) {
	if end.Before(start) {
		return Period{}, fmt.Errorf("%w: end %s is before start %s", ErrInvalidPeriod, end.Format(DefaultLayout), start.Format(DefaultLayout))
	}
	return Period{Start: start, End: end}, nil
}

func (p Period) Contains(value time.Time) bool {
	return !value.Before(p.Start) && !value.After(p.End)
}

func (p Period) String() string {
	return p.Start.Format(DefaultLayout) + " .. " + p.End.Format(DefaultLayout)
}

// ParseHourInput parses a prompt value like "2023-01-03 00". The suffix (":00:00")
// completes the value to DefaultLayout before parsing.
func ParseHourInput(input, suffix string) (time.Time, error) {
	value := strings.TrimSpace(input)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrInvalidPeriod)
	}
	parsed, err := time.ParseInLocation(DefaultLayout, value+suffix, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD HH", ErrInvalidPeriod, input)
	}
	return parsed, nil
}

// ParsePeriodInput builds a period from two prompt values.
func ParsePeriodInput(start, end, suffix string) (Period, error) {
	from, err := ParseHourInput(start, suffix)
	if err != nil {
		return Period{}, err
	}
	to, err := ParseHourInput(end, suffix)
	if err != nil {
		return Period{}, err
	}
	return NewPeriod(from, to)
}

// ParseTimestamp parses a dataset cell. Values are read as UTC wall clock.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty datetime")
	}

	layouts := []string{
		DefaultLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"02.01.2006 15:04",
	}

	for _, layout := range layouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("unsupported datetime format: %q", value)
}
