package device

import (
	"context"
	"sync"

	"github.com/oshokin/pawfeeder/internal/dispenser"
	"github.com/oshokin/pawfeeder/internal/logger"
)

// Servo angle limits; hobby servos clamp anything outside.
const (
	minAngle = 0
	maxAngle = 180
)

// SimServo is a simulated positional servo.
type SimServo struct {
	ctx   context.Context //nolint:containedctx // Carries the named logger only.
	mu    sync.Mutex
	angle int
	moves int
}

// NewSimServo creates a servo that logs through ctx.
func NewSimServo(ctx context.Context) *SimServo {
	return &SimServo{ctx: logger.WithName(ctx, "servo")}
}

// MoveTo clamps angle to the servo range and records it.
func (s *SimServo) MoveTo(angle int) {
	clamped := min(max(angle, minAngle), maxAngle)

	s.mu.Lock()
	s.angle = clamped
	s.moves++
	s.mu.Unlock()

	logger.DebugKV(s.ctx, "Servo moved", "requested", angle, "angle", clamped)
}

// Angle returns the last commanded angle after clamping.
func (s *SimServo) Angle() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.angle
}

// Moves returns the number of MoveTo calls.
func (s *SimServo) Moves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.moves
}

// SimMotor is a simulated DC motor on a shield port.
type SimMotor struct {
	ctx       context.Context //nolint:containedctx // Carries the named logger only.
	mu        sync.Mutex
	direction dispenser.Direction
	speed     uint8
}

// NewSimMotor creates a motor that logs through ctx.
func NewSimMotor(ctx context.Context, port int) *SimMotor {
	return &SimMotor{ctx: logger.WithKV(logger.WithName(ctx, "motor"), "port", port)}
}

// Run records the drive direction.
func (m *SimMotor) Run(direction dispenser.Direction) {
	m.mu.Lock()
	m.direction = direction
	m.mu.Unlock()

	logger.DebugKV(m.ctx, "Motor run", "direction", direction)
}

// SetSpeed records the speed.
func (m *SimMotor) SetSpeed(speed uint8) {
	m.mu.Lock()
	m.speed = speed
	m.mu.Unlock()

	logger.DebugKV(m.ctx, "Motor speed", "speed", speed)
}

// State returns the last direction and speed.
func (m *SimMotor) State() (dispenser.Direction, uint8) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.direction, m.speed
}
