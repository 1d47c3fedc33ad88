package dispenser

import "time"

// Stage is a state of the dispense sequence.
type Stage string

const (
	StageIdle          Stage = "idle"
	StageMoveToFeed    Stage = "move_to_feed"
	StageWiggle        Stage = "wiggle"
	StageReturnToRest  Stage = "return_to_rest"
	StageMotorForward  Stage = "motor_forward"
	StageMotorStop     Stage = "motor_stop"
	StageMotorBackward Stage = "motor_backward"
)

// Step is one executed stage: the actuator order and how long to hold it.
type Step struct {
	Stage Stage
	// Angle is the servo target for servo stages.
	Angle int
	// Direction is the logical motor direction for motor stages.
	Direction Direction
	Hold      time.Duration
}

// Plan expands the profile into its linear list of steps.
func (p Profile) Plan() []Step {
	steps := make([]Step, 0, 8)

	steps = append(steps, Step{Stage: StageMoveToFeed, Angle: p.FeedAngle, Hold: p.FeedHold})

	if p.WiggleOffset != 0 {
		steps = append(steps,
			Step{Stage: StageWiggle, Angle: p.FeedAngle - p.WiggleOffset, Hold: p.WiggleHold},
			Step{Stage: StageWiggle, Angle: p.FeedAngle + p.WiggleOffset, Hold: p.WiggleHold},
		)
	}

	return append(steps,
		Step{Stage: StageReturnToRest, Angle: p.RestAngle, Hold: p.RestPause},
		Step{Stage: StageMotorForward, Direction: Forward, Hold: p.MotorRun},
		Step{Stage: StageMotorStop, Direction: Release, Hold: p.StopPause},
		Step{Stage: StageMotorBackward, Direction: Backward, Hold: p.MotorRun},
		Step{Stage: StageMotorStop, Direction: Release, Hold: p.FinalPause},
	)
}
