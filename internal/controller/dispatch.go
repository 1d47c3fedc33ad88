package controller

import (
	"context"
	"strconv"
	"time"

	"github.com/oshokin/pawfeeder/internal/command"
	"github.com/oshokin/pawfeeder/internal/dispenser"
	"github.com/oshokin/pawfeeder/internal/domain/feeder"
	"github.com/oshokin/pawfeeder/internal/logger"
)

// dispatch applies one command and returns the time spent dispensing.
//
//nolint:cyclop // One case per protocol command reads better than a table here.
func (c *Controller) dispatch(ctx context.Context, now feeder.TimeOfDay, cmd command.Command) time.Duration {
	logger.InfoKV(ctx, "Command received", "line", cmd.Raw, "kind", cmd.Kind)
	c.reply(ctx, "[SERIAL INPUT] "+cmd.Raw)

	var spent time.Duration

	switch cmd.Kind {
	case command.KindReplaceSchedule:
		c.replaceSchedule(ctx, cmd.Times)
	case command.KindResetSchedule:
		c.state.ResetSchedule()
		logger.Info(ctx, "Schedule cleared")
		c.reply(ctx, "[SCHEDULE] cleared")
	case command.KindReportTime:
		c.reply(ctx, now.String())
	case command.KindManualDispense:
		c.reply(ctx, "[MANUAL] dispensing")

		spent = c.dispense(ctx, dispenser.TriggerManual)

		c.state.ManualDispense()
		c.replyMode(ctx)
	case command.KindSetAutomatic:
		c.state.SetAutomatic()
		c.replyMode(ctx)
	case command.KindSetManual:
		c.state.SetManual()
		c.replyMode(ctx)
	case command.KindMotorControl:
		direction := motorDirection(cmd.Motor)
		c.dispenser.Drive(ctx, direction)
		c.reply(ctx, "[MOTOR] "+strconv.Itoa(c.parser.MotorPort)+" "+direction.String())
	case command.KindUnrecognized:
		logger.InfoKV(ctx, "Unrecognized command ignored", "line", cmd.Raw)
	}

	return spent
}

func (c *Controller) replaceSchedule(ctx context.Context, times []string) {
	result := c.state.ReplaceSchedule(times)

	for _, outcome := range result.Outcomes {
		switch {
		case !outcome.Accepted:
			logger.WarnKV(ctx, "Invalid schedule entry", "entry", outcome.Text)
			c.reply(ctx, "[SCHEDULE] invalid "+outcome.Text)
		case !outcome.Live:
			logger.WarnKV(ctx, "Schedule entry can never match", "entry", outcome.Text)
			c.reply(ctx, "[SCHEDULE] added "+outcome.Text)
		default:
			c.reply(ctx, "[SCHEDULE] added "+outcome.Text)
		}
	}

	if result.Dropped > 0 {
		logger.DebugKV(ctx, "Schedule full, extra entries dropped", "dropped", result.Dropped)
	}

	logger.InfoKV(ctx, "Schedule replaced", "entries", len(result.Accepted), "rejected", len(result.Rejected))
	c.replyMode(ctx)
}

// dispense runs the sequence, records it and returns the wall time it blocked.
func (c *Controller) dispense(ctx context.Context, trigger dispenser.Trigger) time.Duration {
	start := c.now()
	run := c.dispenser.Dispense(ctx, trigger)
	spent := c.now().Sub(start)

	c.dispenses++
	c.lastRun = &run

	c.reply(ctx, "[ACTION] dispensed "+run.ID)

	if c.journal != nil {
		if err := c.journal.Save(ctx, run); err != nil {
			logger.ErrorKV(ctx, "Failed to record dispense", "error", err, "dispense_id", run.ID)
		}
	}

	return spent
}

func (c *Controller) replyMode(ctx context.Context) {
	mode := c.state.Mode()

	logger.InfoKV(ctx, "Mode", "mode", mode)
	c.reply(ctx, "[MODE] "+mode.String())
}

// reply writes a line to the transport; failures are logged only.
func (c *Controller) reply(ctx context.Context, text string) {
	if err := c.transport.WriteLine(text); err != nil {
		logger.WarnKV(ctx, "Reply not delivered", "error", err, "text", text)
	}
}

// publish refreshes the status seen by other goroutines.
func (c *Controller) publish(fault bool) {
	status := Status{
		Snapshot:   c.state.Snapshot(),
		ClockFault: fault,
		Ticks:      c.ticks,
		Dispenses:  c.dispenses,
	}

	if c.lastClock != nil {
		at := *c.lastClock
		status.Clock = &at
	}

	if c.lastRun != nil {
		run := *c.lastRun
		status.LastRun = &run
	}

	c.mu.Lock()
	c.status = status
	c.mu.Unlock()
}

func motorDirection(action command.MotorAction) dispenser.Direction {
	switch action {
	case command.MotorForward:
		return dispenser.Forward
	case command.MotorBackward:
		return dispenser.Backward
	case command.MotorStop:
	}

	return dispenser.Release
}
