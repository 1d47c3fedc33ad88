package feeder

import (
	"errors"
	"fmt"
	"strconv"
)

// TimeOfDayLen is the length of the canonical HH:MM:SS form.
const TimeOfDayLen = 8

// ErrMalformedTime is returned for text that is not in HH:MM:SS form.
var ErrMalformedTime = errors.New("malformed time of day")

// TimeOfDay is a clock reading without a date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay builds a TimeOfDay without validating the ranges.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// Valid reports whether every field is within the 24h clock range.
func (t TimeOfDay) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 &&
		t.Minute >= 0 && t.Minute <= 59 &&
		t.Second >= 0 && t.Second <= 59
}

// String renders the canonical zero-padded HH:MM:SS form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// WellFormed reports whether s has the wire shape of a time of day: exactly
// eight characters, the first colon at index 2 and the last one at index 5.
// Digits and ranges are not checked.
func WellFormed(s string) bool {
	if len(s) != TimeOfDayLen {
		return false
	}

	first, last := -1, -1

	for i := range len(s) {
		if s[i] != ':' {
			continue
		}

		if first < 0 {
			first = i
		}

		last = i
	}

	return first == 2 && last == 5
}

// ParseTimeOfDay parses a well-formed HH:MM:SS string. The result may be out
// of range (for example 99:99:99); callers decide whether that matters.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if !WellFormed(s) {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}

	var fields [3]int

	for i, part := range []string{s[0:2], s[3:5], s[6:8]} {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || part[0] == '+' || part[0] == '-' {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, s)
		}

		fields[i] = n
	}

	return NewTimeOfDay(fields[0], fields[1], fields[2]), nil
}
