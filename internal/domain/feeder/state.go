package feeder

// State is the process-wide feeder state: schedule, mode and the debounce
// marker of the last trigger.
type State struct {
	schedule  *Schedule
	mode      Mode
	lastFired TimeOfDay
	hasFired  bool
}

// Snapshot is a detached copy of State for observers.
type Snapshot struct {
	Mode      Mode
	Entries   []Entry
	LastFired *TimeOfDay
}

// NewState creates an empty state starting in the given mode.
func NewState(initial Mode) *State {
	return &State{
		schedule: NewSchedule(),
		mode:     initial,
	}
}

// Mode returns the current mode.
func (s *State) Mode() Mode {
	return s.mode
}

// Schedule exposes the schedule store.
func (s *State) Schedule() *Schedule {
	return s.schedule
}

// LastFired returns the debounce marker.
func (s *State) LastFired() (TimeOfDay, bool) {
	return s.lastFired, s.hasFired
}

// SetAutomatic enables schedule evaluation. The debounce marker is kept.
func (s *State) SetAutomatic() {
	s.mode = ModeAutomatic
}

// SetManual suspends schedule evaluation and clears the debounce marker.
func (s *State) SetManual() {
	s.mode = ModeManual
	s.clearLastFired()
}

// ManualDispense records an operator dispense: the feeder drops to Manual and
// forgets the debounce marker.
func (s *State) ManualDispense() {
	s.SetManual()
}

// ReplaceSchedule swaps the whole schedule and enables Automatic mode.
func (s *State) ReplaceSchedule(candidates []string) ReplaceResult {
	result := s.schedule.ReplaceAll(candidates)
	s.mode = ModeAutomatic

	return result
}

// ResetSchedule empties the schedule and the debounce marker. The mode is kept.
func (s *State) ResetSchedule() {
	s.schedule.Clear()
	s.clearLastFired()
}

// Due runs the match detector: in Automatic mode it returns the first entry
// equal to now unless now already fired. A reading different from the marker
// re-arms it, so the same entry fires again the next day.
func (s *State) Due(now TimeOfDay) (Entry, bool) {
	if s.mode != ModeAutomatic {
		return Entry{}, false
	}

	if s.hasFired {
		if s.lastFired == now {
			return Entry{}, false
		}

		s.clearLastFired()
	}

	for _, e := range s.schedule.entries {
		if e.Matches(now) {
			return e, true
		}
	}

	return Entry{}, false
}

// MarkFired sets the debounce marker after a scheduled dispense.
func (s *State) MarkFired(now TimeOfDay) {
	s.lastFired = now
	s.hasFired = true
}

// Snapshot returns a copy safe to hand to other goroutines.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:    s.mode,
		Entries: s.schedule.Entries(),
	}

	if s.hasFired {
		at := s.lastFired
		snap.LastFired = &at
	}

	return snap
}

func (s *State) clearLastFired() {
	s.lastFired = TimeOfDay{}
	s.hasFired = false
}
