package session

import (
	"time"
)

// Clock tracks elapsed song time as a pure function of the timestamps
// passed to it, so that pausing never leaks wall time into the song.
type Clock struct {
	origin     time.Time
	paused     bool
	pausedAt   time.Time
	pauseTotal time.Duration
}

func (c *Clock) Start(now time.Time) {
	c.origin = now
	c.paused = false
	c.pauseTotal = 0
}

// Pause freezes the elapsed reading. A no-op when already paused.
func (c *Clock) Pause(now time.Time) {
	if c.paused {
		return
	}
	c.paused = true
	c.pausedAt = now
}

// Resume subtracts the time spent paused so elapsed continues from
// where Pause froze it. A no-op when not paused.
func (c *Clock) Resume(now time.Time) {
	if !c.paused {
		return
	}
	c.pauseTotal += now.Sub(c.pausedAt)
	c.paused = false
}

func (c *Clock) Paused() bool {
	return c.paused
}

func (c *Clock) Elapsed(now time.Time) time.Duration {
	if c.paused {
		return c.pausedAt.Sub(c.origin) - c.pauseTotal
	}
	return now.Sub(c.origin) - c.pauseTotal
}
