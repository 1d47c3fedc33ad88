package dispenser

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Profile holds the calibration of one feeder build. Durations are constants
// of the build; they are selected by profile name, never tuned at runtime.
type Profile struct {
	Name string

	RestAngle int
	FeedAngle int
	// FeedHold keeps the gate open at FeedAngle.
	FeedHold time.Duration

	// WiggleOffset shakes the gate to FeedAngle-offset then FeedAngle+offset.
	// Zero disables the wiggle.
	WiggleOffset int
	WiggleHold   time.Duration

	// RestPause is waited after the gate returns to rest.
	RestPause time.Duration

	MotorPort int
	// MotorInverted flips the physical direction for motors mounted backwards.
	MotorInverted bool
	MotorSpeed    uint8
	MotorRun      time.Duration
	// StopPause is waited after the first motor stop, FinalPause after the second.
	StopPause  time.Duration
	FinalPause time.Duration
	// ZeroSpeedOnStop sets the speed to zero before releasing the motor.
	ZeroSpeedOnStop bool

	// BenchSpeed is applied by the M<port>F/B tokens.
	BenchSpeed uint8
}

// ErrUnknownProfile is returned by Lookup for an unknown name.
var ErrUnknownProfile = errors.New("unknown dispense profile")

// Built-in profiles.
//
//nolint:gochecknoglobals // Compiled-in calibration tables.
var profiles = map[string]Profile{
	"shield-m1": {
		Name:            "shield-m1",
		RestAngle:       0,
		FeedAngle:       150,
		FeedHold:        3 * time.Second,
		WiggleOffset:    50,
		WiggleHold:      250 * time.Millisecond,
		RestPause:       2 * time.Second,
		MotorPort:       1,
		MotorSpeed:      130,
		MotorRun:        500 * time.Millisecond,
		StopPause:       3 * time.Second,
		FinalPause:      0,
		ZeroSpeedOnStop: true,
		BenchSpeed:      150,
	},
	"shield-m3": {
		Name:          "shield-m3",
		RestAngle:     0,
		FeedAngle:     150,
		FeedHold:      3 * time.Second,
		WiggleOffset:  50,
		WiggleHold:    250 * time.Millisecond,
		RestPause:     2 * time.Second,
		MotorPort:     3,
		MotorInverted: true,
		MotorSpeed:    255,
		MotorRun:      1200 * time.Millisecond,
		StopPause:     10 * time.Second,
		FinalPause:    5 * time.Second,
		BenchSpeed:    255,
	},
	"servo-hold": {
		Name:       "servo-hold",
		RestAngle:  0,
		FeedAngle:  90,
		FeedHold:   5 * time.Second,
		MotorPort:  1,
		BenchSpeed: 200,
	},
}

// Lookup returns the built-in profile called name.
func Lookup(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (known: %v)", ErrUnknownProfile, name, Names())
	}

	return p, nil
}

// Names lists the built-in profiles in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Duration is the total blocking time of one dispense.
func (p Profile) Duration() time.Duration {
	var total time.Duration
	for _, step := range p.Plan() {
		total += step.Hold
	}

	return total
}
