package bakery

import (
	"fmt"
	"time"
)

// Countdown is the round clock. It only counts down, never below zero, and
// reports the moment it reaches zero exactly once.
type Countdown struct {
	remaining time.Duration
	running   bool
}

// NewCountdown returns a stopped countdown holding d.
func NewCountdown(d time.Duration) Countdown {
	return Countdown{remaining: max(d, 0)}
}

// Start lets Tick decrement the clock.
func (c *Countdown) Start() {
	if c.remaining > 0 {
		c.running = true
	}
}

// Tick subtracts delta and returns true only on the call that reaches zero.
func (c *Countdown) Tick(delta time.Duration) bool {
	if !c.running || delta <= 0 {
		return false
	}
	c.remaining -= delta
	if c.remaining > 0 {
		return false
	}
	c.remaining = 0
	c.running = false
	return true
}

// ForceEnd zeroes and stops the clock. It returns true if the clock was
// still running.
func (c *Countdown) ForceEnd() bool {
	wasRunning := c.running
	c.remaining = 0
	c.running = false
	return wasRunning
}

// Remaining returns the time left.
func (c Countdown) Remaining() time.Duration {
	return c.remaining
}

// Running reports whether the clock is counting.
func (c Countdown) Running() bool {
	return c.running
}

// FormatClock renders d as MM:SS:CC (minutes, seconds, hundredths).
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	cs := d.Milliseconds() / 10
	return fmt.Sprintf("%02d:%02d:%02d", cs/6000, (cs/100)%60, cs%100)
}
