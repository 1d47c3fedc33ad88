package feeder

import "strings"

// ScheduleCapacity is the maximum number of stored feeding times.
const ScheduleCapacity = 10

// Entry is one stored schedule slot.
type Entry struct {
	// Text is the accepted candidate as received.
	Text string
	// At is the parsed time; meaningful only when Live is true.
	At TimeOfDay
	// Live is false for well-formed text that can never match a clock reading,
	// such as 99:99:99.
	Live bool
}

// Matches reports whether the entry fires at now.
func (e Entry) Matches(now TimeOfDay) bool {
	return e.Live && e.At == now
}

// Outcome is the verdict on one examined candidate.
type Outcome struct {
	// Text is the trimmed candidate.
	Text string
	// Accepted is true when the candidate was stored.
	Accepted bool
	// Live mirrors Entry.Live for accepted candidates.
	Live bool
}

// ReplaceResult describes the outcome of a bulk schedule replacement.
type ReplaceResult struct {
	// Outcomes holds one verdict per examined candidate, in input order.
	Outcomes []Outcome
	// Accepted holds the stored entries in input order.
	Accepted []Entry
	// Rejected holds malformed candidates.
	Rejected []string
	// Dropped counts candidates never examined because the schedule was full.
	Dropped int
}

// Schedule is a bounded, ordered list of feeding times.
// The zero value is an empty schedule ready to use.
type Schedule struct {
	entries []Entry
}

// NewSchedule creates an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{
		entries: make([]Entry, 0, ScheduleCapacity),
	}
}

// ReplaceAll clears the schedule and stores candidates in order until the
// capacity is reached. Malformed candidates are skipped individually.
func (s *Schedule) ReplaceAll(candidates []string) ReplaceResult {
	s.entries = make([]Entry, 0, ScheduleCapacity)

	var result ReplaceResult

	for i, raw := range candidates {
		if len(s.entries) >= ScheduleCapacity {
			result.Dropped = len(candidates) - i

			break
		}

		text := strings.TrimSpace(raw)
		if !WellFormed(text) {
			result.Rejected = append(result.Rejected, text)
			result.Outcomes = append(result.Outcomes, Outcome{Text: text})

			continue
		}

		entry := Entry{Text: text}
		if at, err := ParseTimeOfDay(text); err == nil && at.Valid() {
			entry.At = at
			entry.Live = true
		}

		s.entries = append(s.entries, entry)
		result.Outcomes = append(result.Outcomes, Outcome{Text: text, Accepted: true, Live: entry.Live})
	}

	result.Accepted = s.Entries()

	return result
}

// Clear removes every entry.
func (s *Schedule) Clear() {
	s.entries = s.entries[:0]
}

// Len returns the number of stored entries.
func (s *Schedule) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the stored entries.
func (s *Schedule) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Match reports whether now equals any live entry.
func (s *Schedule) Match(now TimeOfDay) bool {
	for _, e := range s.entries {
		if e.Matches(now) {
			return true
		}
	}

	return false
}
