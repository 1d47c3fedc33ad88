package device

import (
	"errors"
	"sync"
	"time"

	"github.com/oshokin/pawfeeder/internal/domain/feeder"
)

// ErrClockFault is returned by a clock that cannot produce a reading.
var ErrClockFault = errors.New("clock fault")

// SystemClock reads the local wall clock.
type SystemClock struct {
	now func() time.Time
}

// NewSystemClock creates a clock backed by time.Now.
func NewSystemClock() *SystemClock {
	return &SystemClock{now: time.Now}
}

// Read returns the current local time of day.
func (c *SystemClock) Read() (feeder.TimeOfDay, error) {
	t := c.now()

	return feeder.NewTimeOfDay(t.Hour(), t.Minute(), t.Second()), nil
}

// ManualClock is a settable clock. It is safe for concurrent use.
type ManualClock struct {
	mu      sync.Mutex
	current feeder.TimeOfDay
	fault   error
}

// NewManualClock creates a clock stopped at start.
func NewManualClock(start feeder.TimeOfDay) *ManualClock {
	return &ManualClock{current: start}
}

// Read returns the set time, or the injected fault.
func (c *ManualClock) Read() (feeder.TimeOfDay, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fault != nil {
		return feeder.TimeOfDay{}, c.fault
	}

	return c.current, nil
}

// Set moves the clock to t. Out-of-range values are kept as-is to emulate a
// corrupted chip reading.
func (c *ManualClock) Set(t feeder.TimeOfDay) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current = t
	c.fault = nil
}

// Fail makes subsequent reads return err until the next Set.
func (c *ManualClock) Fail(err error) {
	if err == nil {
		err = ErrClockFault
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.fault = err
}

// Advance moves the clock forward by d, wrapping at midnight.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	const day = 24 * time.Hour

	offset := time.Duration(c.current.Hour)*time.Hour +
		time.Duration(c.current.Minute)*time.Minute +
		time.Duration(c.current.Second)*time.Second

	offset = ((offset+d)%day + day) % day

	c.current = feeder.NewTimeOfDay(
		int(offset/time.Hour),
		int(offset%time.Hour/time.Minute),
		int(offset%time.Minute/time.Second),
	)
}
