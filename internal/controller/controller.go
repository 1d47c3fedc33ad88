package controller

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oshokin/pawfeeder/internal/command"
	"github.com/oshokin/pawfeeder/internal/dispenser"
	"github.com/oshokin/pawfeeder/internal/domain/feeder"
	"github.com/oshokin/pawfeeder/internal/logger"
)

// DefaultPeriod is the nominal tick period.
const DefaultPeriod = time.Second

// errInvalidReading marks a clock reading with out-of-range fields.
var errInvalidReading = errors.New("clock reading out of range")

// ClockReader supplies the current time of day.
type ClockReader interface {
	Read() (feeder.TimeOfDay, error)
}

// LineTransport is the polled command channel.
type LineTransport interface {
	TryReadLine() (string, bool)
	WriteLine(text string) error
}

// Dispenser runs the actuation sequence and bench motor orders.
type Dispenser interface {
	Dispense(ctx context.Context, trigger dispenser.Trigger) dispenser.Run
	Drive(ctx context.Context, direction dispenser.Direction)
}

// Journal records completed dispenses.
type Journal interface {
	Save(ctx context.Context, run dispenser.Run) error
}

// Options configures a Controller.
type Options struct {
	// InitialMode is the mode at boot.
	InitialMode feeder.Mode
	// Period is the nominal tick period, DefaultPeriod when zero.
	Period time.Duration
	// MotorPort selects the accepted M<port>F/B/S bench tokens.
	MotorPort int
	// Journal is optional.
	Journal Journal
	// Now replaces time.Now for tick budgeting.
	Now func() time.Time
}

// Status is a detached view of the controller for other goroutines.
type Status struct {
	feeder.Snapshot

	// Clock is the last valid reading, nil before the first one.
	Clock *feeder.TimeOfDay
	// ClockFault is true when the most recent tick was skipped.
	ClockFault bool
	Ticks      uint64
	Dispenses  int
	LastRun    *dispenser.Run
}

// TickReport summarizes one control cycle.
type TickReport struct {
	// Fault is true when the clock reading was unusable and the tick was skipped.
	Fault bool
	// Fired is true when the schedule triggered a dispense.
	Fired bool
	// Command is the kind of the consumed line, empty when none was read.
	Command command.Kind
	// Dispensing is the wall time spent blocked in dispenses.
	Dispensing time.Duration
}

// Controller owns the feeder state and runs the control cycle.
type Controller struct {
	state     *feeder.State
	clock     ClockReader
	transport LineTransport
	dispenser Dispenser
	parser    *command.Parser
	journal   Journal
	period    time.Duration
	now       func() time.Time

	// Owned by the loop goroutine.
	ticks     uint64
	dispenses int
	lastRun   *dispenser.Run
	lastClock *feeder.TimeOfDay

	mu     sync.RWMutex
	status Status
}

// New wires a controller. The state starts with an empty schedule.
func New(opts Options, clock ClockReader, transport LineTransport, disp Dispenser) *Controller {
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Controller{
		state:     feeder.NewState(opts.InitialMode),
		clock:     clock,
		transport: transport,
		dispenser: disp,
		parser:    command.NewParser(opts.MotorPort),
		journal:   opts.Journal,
		period:    opts.Period,
		now:       opts.Now,
	}

	c.publish(false)

	return c
}

// Status returns the state published by the last tick.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.status
}

// Run ticks until ctx is canceled. The wait after each tick is the period minus
// the time the tick spent outside dispensing.
func (c *Controller) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "controller")

	logger.InfoKV(ctx, "Control loop started", "period", c.period, "mode", c.state.Mode())

	for {
		if ctx.Err() != nil {
			logger.Info(ctx, "Control loop stopped")

			return nil
		}

		start := c.now()
		report := c.Tick(ctx)
		work := c.now().Sub(start) - report.Dispensing

		select {
		case <-ctx.Done():
			logger.Info(ctx, "Control loop stopped")

			return nil
		case <-time.After(max(c.period-work, 0)):
		}
	}
}

// Tick runs one control cycle.
func (c *Controller) Tick(ctx context.Context) TickReport {
	var report TickReport

	c.ticks++

	now, err := c.clock.Read()
	if err == nil && !now.Valid() {
		err = errInvalidReading
	}

	if err != nil {
		logger.WarnKV(ctx, "Clock fault, skipping tick", "error", err, "reading", now.String())
		c.reply(ctx, "[ERROR] invalid clock reading")
		c.publish(true)

		report.Fault = true

		return report
	}

	c.lastClock = &now

	logger.DebugKV(ctx, "Tick", "time", now.String(), "mode", c.state.Mode())

	if entry, ok := c.state.Due(now); ok {
		logger.InfoKV(ctx, "Feeding time matched", "entry", entry.Text)
		c.reply(ctx, "[MATCH] "+entry.Text)

		report.Dispensing += c.dispense(ctx, dispenser.TriggerSchedule)
		report.Fired = true

		c.state.MarkFired(now)
	}

	if line, ok := c.transport.TryReadLine(); ok {
		cmd := c.parser.Parse(line)
		report.Command = cmd.Kind
		report.Dispensing += c.dispatch(ctx, now, cmd)
	}

	c.publish(false)

	return report
}
