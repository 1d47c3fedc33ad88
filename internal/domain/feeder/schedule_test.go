package feeder

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSchedule_ReplaceAll_MatchesEveryEntry verifies stored entries match their own instants.
func TestSchedule_ReplaceAll_MatchesEveryEntry(t *testing.T) {
	t.Parallel()

	s := NewSchedule()
	result := s.ReplaceAll([]string{"07:00:00", " 12:15:30 ", "18:30:00"})

	require.Len(t, result.Accepted, 3)
	require.Empty(t, result.Rejected)
	require.Zero(t, result.Dropped)
	require.Equal(t, "12:15:30", result.Accepted[1].Text)

	require.True(t, s.Match(NewTimeOfDay(7, 0, 0)))
	require.True(t, s.Match(NewTimeOfDay(12, 15, 30)))
	require.True(t, s.Match(NewTimeOfDay(18, 30, 0)))
	require.False(t, s.Match(NewTimeOfDay(18, 30, 1)))
}

// TestSchedule_ReplaceAll_Capacity keeps only the first ten entries.
func TestSchedule_ReplaceAll_Capacity(t *testing.T) {
	t.Parallel()

	candidates := make([]string, 0, 13)
	for i := range 13 {
		candidates = append(candidates, fmt.Sprintf("10:%02d:00", i))
	}

	s := NewSchedule()
	result := s.ReplaceAll(candidates)

	require.Len(t, result.Accepted, ScheduleCapacity)
	require.Equal(t, 3, result.Dropped)
	require.Equal(t, ScheduleCapacity, s.Len())
	require.True(t, s.Match(NewTimeOfDay(10, 9, 0)))
	require.False(t, s.Match(NewTimeOfDay(10, 10, 0)))
	require.False(t, s.Match(NewTimeOfDay(10, 12, 0)))
}

// TestSchedule_ReplaceAll_RejectsMalformed drops bad candidates without aborting the batch.
func TestSchedule_ReplaceAll_RejectsMalformed(t *testing.T) {
	t.Parallel()

	s := NewSchedule()
	result := s.ReplaceAll([]string{"7:00", "08:00:00", "", "08-30-00", "09:00:00"})

	require.Equal(t, []string{"7:00", "", "08-30-00"}, result.Rejected)
	require.Len(t, result.Accepted, 2)

	for _, e := range s.Entries() {
		require.NotEqual(t, "7:00", e.Text)
	}
}

// TestSchedule_ReplaceAll_RejectedDoNotUseCapacity lets later valid entries fill the slots.
func TestSchedule_ReplaceAll_RejectedDoNotUseCapacity(t *testing.T) {
	t.Parallel()

	candidates := []string{"bad", "bad"}
	for i := range ScheduleCapacity {
		candidates = append(candidates, fmt.Sprintf("11:00:%02d", i))
	}

	s := NewSchedule()
	result := s.ReplaceAll(candidates)

	require.Len(t, result.Rejected, 2)
	require.Equal(t, ScheduleCapacity, s.Len())
	require.Zero(t, result.Dropped)
}

// TestSchedule_DeadEntries stores numerically invalid times that never match.
func TestSchedule_DeadEntries(t *testing.T) {
	t.Parallel()

	s := NewSchedule()
	result := s.ReplaceAll([]string{"07:00:00", "99:99:99", "ab:cd:ef"})

	require.Empty(t, result.Rejected)
	require.Equal(t, 3, s.Len())

	entries := s.Entries()
	require.True(t, entries[0].Live)
	require.False(t, entries[1].Live)
	require.Equal(t, "99:99:99", entries[1].Text)
	require.False(t, entries[2].Live)

	require.False(t, s.Match(NewTimeOfDay(99, 99, 99)))
	require.False(t, s.Match(TimeOfDay{}))
}

// TestSchedule_ReplaceAll_Idempotent yields the same schedule when applied twice.
func TestSchedule_ReplaceAll_Idempotent(t *testing.T) {
	t.Parallel()

	payload := []string{"07:00:00", "07:00:00", "x", "18:30:00"}

	once := NewSchedule()
	once.ReplaceAll(payload)

	twice := NewSchedule()
	twice.ReplaceAll(payload)
	twice.ReplaceAll(payload)

	require.Equal(t, once.Entries(), twice.Entries())
}

// TestSchedule_EntriesIsCopy ensures callers cannot mutate the store.
func TestSchedule_EntriesIsCopy(t *testing.T) {
	t.Parallel()

	s := NewSchedule()
	s.ReplaceAll([]string{"07:00:00"})

	entries := s.Entries()
	entries[0].Live = false

	require.True(t, s.Match(NewTimeOfDay(7, 0, 0)))

	s.Clear()
	require.Zero(t, s.Len())
	require.Len(t, entries, 1)
}

// TestSchedule_ZeroValue works without the constructor.
func TestSchedule_ZeroValue(t *testing.T) {
	t.Parallel()

	var s Schedule
	require.False(t, s.Match(NewTimeOfDay(0, 0, 0)))

	s.ReplaceAll([]string{"00:00:00"})
	require.True(t, s.Match(NewTimeOfDay(0, 0, 0)))
}

// TestSchedule_ReplaceAll_OutcomesInInputOrder interleaves accepted and rejected candidates.
func TestSchedule_ReplaceAll_OutcomesInInputOrder(t *testing.T) {
	t.Parallel()

	s := NewSchedule()
	result := s.ReplaceAll([]string{"07:00:00", "7:30", " 99:99:99 ", "18:30:00"})

	require.Equal(t, []Outcome{
		{Text: "07:00:00", Accepted: true, Live: true},
		{Text: "7:30"},
		{Text: "99:99:99", Accepted: true},
		{Text: "18:30:00", Accepted: true, Live: true},
	}, result.Outcomes)
	require.Equal(t, []string{"7:30"}, result.Rejected)
	require.Len(t, result.Accepted, 3)

	// Candidates past capacity are not examined.
	many := make([]string, 0, ScheduleCapacity+2)
	for range ScheduleCapacity + 2 {
		many = append(many, "12:00:00")
	}

	result = s.ReplaceAll(many)
	require.Len(t, result.Outcomes, ScheduleCapacity)
	require.Equal(t, 2, result.Dropped)
}
