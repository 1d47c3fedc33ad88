package dispenser

import "time"

//go:generate mockgen -destination mock_actuator_test.go -package $GOPACKAGE -write_package_comment=false -source actuator.go

// Direction is a motor drive order.
type Direction int

const (
	// Release stops driving the motor.
	Release Direction = iota
	// Forward drives the motor forward.
	Forward
	// Backward drives the motor backward.
	Backward
)

// String returns the direction name used in logs and replies.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Release:
		return "stopped"
	default:
		return "unknown"
	}
}

// Reverse swaps Forward and Backward; Release is unchanged.
func (d Direction) Reverse() Direction {
	switch d {
	case Forward:
		return Backward
	case Backward:
		return Forward
	case Release:
	}

	return d
}

// PositionalActuator moves the food gate servo to an absolute angle.
type PositionalActuator interface {
	MoveTo(angle int)
}

// SpeedMotor is a bidirectional variable-speed DC motor.
type SpeedMotor interface {
	Run(direction Direction)
	SetSpeed(speed uint8)
}

// Sleeper blocks for the hold time of a stage.
type Sleeper interface {
	Sleep(d time.Duration)
}

// SleepFunc adapts a function to Sleeper.
type SleepFunc func(d time.Duration)

// Sleep calls f(d).
func (f SleepFunc) Sleep(d time.Duration) {
	f(d)
}
