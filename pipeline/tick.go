package pipeline

import (
	"sync/atomic"
	"time"

	"halo/hal"
)

// Clock is the pipeline's tick service: a monotonic millisecond counter
// advanced by the platform's tick stream at a fixed period, independent of
// render cadence. Animations key off this counter, so a slow frame skips
// animation frames instead of slowing time down.
type Clock struct {
	millis atomic.Uint64
	stop   chan struct{}
}

// NewClock starts consuming src's tick stream.
func NewClock(src hal.Time) *Clock {
	c := &Clock{stop: make(chan struct{})}
	period := src.TickPeriodMillis()
	if period == 0 {
		period = 1
	}
	go func() {
		ticks := src.Ticks()
		for {
			select {
			case <-c.stop:
				return
			case _, ok := <-ticks:
				if !ok {
					return
				}
				c.millis.Add(period)
			}
		}
	}()
	return c
}

// Now returns the elapsed monotonic time.
func (c *Clock) Now() time.Duration {
	return time.Duration(c.millis.Load()) * time.Millisecond
}

// Stop halts the clock. Idempotent-unsafe: call once at shutdown.
func (c *Clock) Stop() {
	close(c.stop)
}
