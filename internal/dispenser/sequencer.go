package dispenser

import (
	"context"
	"time"

	"github.com/rs/xid"

	"github.com/oshokin/pawfeeder/internal/logger"
)

// Trigger names what started a dispense.
type Trigger string

const (
	TriggerSchedule Trigger = "schedule"
	TriggerManual   Trigger = "manual"
)

// Run describes a completed dispense.
type Run struct {
	ID        string
	Trigger   Trigger
	Profile   string
	StartedAt time.Time
	Duration  time.Duration
}

// Sequencer executes dispense sequences and bench motor orders.
// It is driven by a single goroutine.
type Sequencer struct {
	profile Profile
	plan    []Step
	servo   PositionalActuator
	motor   SpeedMotor
	sleeper Sleeper
	now     func() time.Time
	stage   Stage
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithSleeper replaces time.Sleep for stage holds.
func WithSleeper(s Sleeper) Option {
	return func(q *Sequencer) {
		if s != nil {
			q.sleeper = s
		}
	}
}

// WithClock replaces time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(q *Sequencer) {
		if now != nil {
			q.now = now
		}
	}
}

// New creates a sequencer for profile driving servo and motor.
func New(profile Profile, servo PositionalActuator, motor SpeedMotor, opts ...Option) *Sequencer {
	s := &Sequencer{
		profile: profile,
		plan:    profile.Plan(),
		servo:   servo,
		motor:   motor,
		sleeper: SleepFunc(time.Sleep),
		now:     time.Now,
		stage:   StageIdle,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Profile returns the active profile.
func (s *Sequencer) Profile() Profile {
	return s.profile
}

// Stage returns the stage being executed, StageIdle between runs.
func (s *Sequencer) Stage() Stage {
	return s.stage
}

// Home parks the gate at rest and releases the motor.
func (s *Sequencer) Home(ctx context.Context) {
	s.servo.MoveTo(s.profile.RestAngle)
	s.motor.Run(Release)

	logger.DebugKV(ctx, "Actuators homed", "rest_angle", s.profile.RestAngle)
}

// Dispense runs the whole sequence and blocks until the last stage has held.
// There is no cancellation: a started dispense always completes.
func (s *Sequencer) Dispense(ctx context.Context, trigger Trigger) Run {
	run := Run{
		ID:        xid.New().String(),
		Trigger:   trigger,
		Profile:   s.profile.Name,
		StartedAt: s.now(),
	}

	ctx = logger.WithKV(ctx, "dispense_id", run.ID)
	logger.InfoKV(ctx, "Dispense started", "trigger", trigger, "profile", s.profile.Name)

	for _, step := range s.plan {
		s.stage = step.Stage
		s.apply(step)

		logger.DebugKV(ctx, "Dispense stage", "stage", step.Stage, "hold", step.Hold)

		if step.Hold > 0 {
			s.sleeper.Sleep(step.Hold)
		}
	}

	s.stage = StageIdle
	run.Duration = s.now().Sub(run.StartedAt)

	logger.InfoKV(ctx, "Dispense finished", "duration", run.Duration)

	return run
}

// Drive applies a bench order directly to the motor, bypassing the sequence.
func (s *Sequencer) Drive(ctx context.Context, direction Direction) {
	s.motor.Run(direction)

	if direction != Release {
		s.motor.SetSpeed(s.profile.BenchSpeed)
	}

	logger.InfoKV(ctx, "Bench motor order", "port", s.profile.MotorPort, "direction", direction)
}

func (s *Sequencer) apply(step Step) {
	switch step.Stage {
	case StageMoveToFeed, StageWiggle, StageReturnToRest:
		s.servo.MoveTo(step.Angle)
	case StageMotorForward, StageMotorBackward:
		direction := step.Direction
		if s.profile.MotorInverted {
			direction = direction.Reverse()
		}

		s.motor.Run(direction)
		s.motor.SetSpeed(s.profile.MotorSpeed)
	case StageMotorStop:
		if s.profile.ZeroSpeedOnStop {
			s.motor.SetSpeed(0)
		}

		s.motor.Run(Release)
	case StageIdle:
	}
}
