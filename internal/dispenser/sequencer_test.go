package dispenser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeClock advances only when the sequencer sleeps.
type fakeClock struct {
	now time.Time
}

// Now returns the current fake time.
func (c *fakeClock) Now() time.Time { return c.now }

// Sleep advances the fake time by d.
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

// nopServo and nopMotor accept every order.
type (
	nopServo struct{}
	nopMotor struct{}
)

func (nopServo) MoveTo(int)     {}
func (nopMotor) Run(Direction)  {}
func (nopMotor) SetSpeed(uint8) {}

// TestSequencer_ShieldM1Order asserts the exact actuator and hold order of the default profile.
func TestSequencer_ShieldM1Order(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	servo := NewMockPositionalActuator(ctrl)
	motor := NewMockSpeedMotor(ctrl)
	sleeper := NewMockSleeper(ctrl)

	profile, err := Lookup("shield-m1")
	require.NoError(t, err)

	gomock.InOrder(
		servo.EXPECT().MoveTo(150),
		sleeper.EXPECT().Sleep(3*time.Second),
		servo.EXPECT().MoveTo(100),
		sleeper.EXPECT().Sleep(250*time.Millisecond),
		servo.EXPECT().MoveTo(200),
		sleeper.EXPECT().Sleep(250*time.Millisecond),
		servo.EXPECT().MoveTo(0),
		sleeper.EXPECT().Sleep(2*time.Second),
		motor.EXPECT().Run(Forward),
		motor.EXPECT().SetSpeed(uint8(130)),
		sleeper.EXPECT().Sleep(500*time.Millisecond),
		motor.EXPECT().SetSpeed(uint8(0)),
		motor.EXPECT().Run(Release),
		sleeper.EXPECT().Sleep(3*time.Second),
		motor.EXPECT().Run(Backward),
		motor.EXPECT().SetSpeed(uint8(130)),
		sleeper.EXPECT().Sleep(500*time.Millisecond),
		motor.EXPECT().SetSpeed(uint8(0)),
		motor.EXPECT().Run(Release),
	)

	seq := New(profile, servo, motor, WithSleeper(sleeper))
	run := seq.Dispense(context.Background(), TriggerSchedule)

	require.NotEmpty(t, run.ID)
	require.Equal(t, TriggerSchedule, run.Trigger)
	require.Equal(t, "shield-m1", run.Profile)
	require.Equal(t, StageIdle, seq.Stage())
}

// TestSequencer_ShieldM3Inverted drives the inverted motor backward first and keeps the speed on stop.
func TestSequencer_ShieldM3Inverted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	servo := NewMockPositionalActuator(ctrl)
	motor := NewMockSpeedMotor(ctrl)

	profile, err := Lookup("shield-m3")
	require.NoError(t, err)

	servo.EXPECT().MoveTo(gomock.Any()).Times(4)

	gomock.InOrder(
		motor.EXPECT().Run(Backward),
		motor.EXPECT().SetSpeed(uint8(255)),
		motor.EXPECT().Run(Release),
		motor.EXPECT().Run(Forward),
		motor.EXPECT().SetSpeed(uint8(255)),
		motor.EXPECT().Run(Release),
	)

	clock := new(fakeClock)
	seq := New(profile, servo, motor, WithSleeper(SleepFunc(clock.Sleep)), WithClock(clock.Now))
	run := seq.Dispense(context.Background(), TriggerManual)

	require.Equal(t, profile.Duration(), run.Duration)
	require.Equal(t, 3*time.Second+500*time.Millisecond+2*time.Second+2400*time.Millisecond+15*time.Second, run.Duration)
}

// TestSequencer_StagesAreLinear records the stage seen at every hold.
func TestSequencer_StagesAreLinear(t *testing.T) {
	t.Parallel()

	profile, err := Lookup("shield-m1")
	require.NoError(t, err)

	var (
		seq    *Sequencer
		stages []Stage
	)

	seq = New(profile, nopServo{}, nopMotor{}, WithSleeper(SleepFunc(func(time.Duration) {
		stages = append(stages, seq.Stage())
	})))

	seq.Dispense(context.Background(), TriggerManual)

	require.Equal(t, []Stage{
		StageMoveToFeed,
		StageWiggle,
		StageWiggle,
		StageReturnToRest,
		StageMotorForward,
		StageMotorStop,
		StageMotorBackward,
	}, stages)
	require.Equal(t, StageIdle, seq.Stage())
}

// TestProfile_ServoHoldHasNoWiggle checks the servo-only plan.
func TestProfile_ServoHoldHasNoWiggle(t *testing.T) {
	t.Parallel()

	profile, err := Lookup("servo-hold")
	require.NoError(t, err)

	plan := profile.Plan()
	require.Equal(t, StageMoveToFeed, plan[0].Stage)
	require.Equal(t, 90, plan[0].Angle)
	require.Equal(t, StageReturnToRest, plan[1].Stage)

	for _, step := range plan {
		require.NotEqual(t, StageWiggle, step.Stage)
	}

	require.Equal(t, 5*time.Second, profile.Duration())
}

// TestLookup_Unknown reports the known names.
func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := Lookup("catapult")
	require.ErrorIs(t, err, ErrUnknownProfile)
	require.Equal(t, []string{"servo-hold", "shield-m1", "shield-m3"}, Names())
}

// TestSequencer_DriveAndHome covers bench orders outside the sequence.
func TestSequencer_DriveAndHome(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	servo := NewMockPositionalActuator(ctrl)
	motor := NewMockSpeedMotor(ctrl)

	profile, err := Lookup("shield-m3")
	require.NoError(t, err)

	gomock.InOrder(
		servo.EXPECT().MoveTo(0),
		motor.EXPECT().Run(Release),
		// Bench orders are not inverted.
		motor.EXPECT().Run(Forward),
		motor.EXPECT().SetSpeed(uint8(255)),
		motor.EXPECT().Run(Backward),
		motor.EXPECT().SetSpeed(uint8(255)),
		motor.EXPECT().Run(Release),
	)

	seq := New(profile, servo, motor)
	ctx := context.Background()

	seq.Home(ctx)
	seq.Drive(ctx, Forward)
	seq.Drive(ctx, Backward)
	seq.Drive(ctx, Release)
}

// TestDirection covers names and reversal.
func TestDirection(t *testing.T) {
	t.Parallel()

	require.Equal(t, Backward, Forward.Reverse())
	require.Equal(t, Forward, Backward.Reverse())
	require.Equal(t, Release, Release.Reverse())
	require.Equal(t, "stopped", Release.String())
}
