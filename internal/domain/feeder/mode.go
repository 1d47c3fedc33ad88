package feeder

import (
	"fmt"
	"strings"
)

// Mode tells whether the schedule is evaluated against the clock.
type Mode int

const (
	// ModeManual suspends schedule evaluation.
	ModeManual Mode = iota
	// ModeAutomatic evaluates the schedule on every tick.
	ModeAutomatic
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeAutomatic:
		return "automatic"
	case ModeManual:
		return "manual"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "manual", "automatic" or "auto", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual":
		return ModeManual, nil
	case "automatic", "auto":
		return ModeAutomatic, nil
	default:
		return ModeManual, fmt.Errorf("unknown mode %q", s)
	}
}
