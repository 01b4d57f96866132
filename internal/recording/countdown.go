package recording

import "time"

// CountdownTimer is the per-target resource attached while the machine is in
// Countdown mode.
type CountdownTimer struct {
	Remaining time.Duration
	Initial   time.Duration
}

// NewCountdown starts a countdown of the given length.
func NewCountdown(d time.Duration) *CountdownTimer {
	return &CountdownTimer{Remaining: d, Initial: d}
}

// Tick decrements Remaining by delta (never below zero) and reports whether
// the countdown has reached zero.
func (c *CountdownTimer) Tick(delta time.Duration) bool {
	if c == nil {
		return false
	}
	c.Remaining -= delta
	if c.Remaining < 0 {
		c.Remaining = 0
	}
	return c.Remaining == 0
}

// Display returns the integer shown to the UI: 3 while more than 2s remain,
// 2 while more than 1s remains, 1 while any time remains. It reports
// ok=false once Remaining has reached zero (or for a nil countdown).
func (c *CountdownTimer) Display() (n int, ok bool) {
	if c == nil {
		return 0, false
	}
	secs := c.Remaining.Seconds()
	switch {
	case secs > 2:
		return 3, true
	case secs > 1:
		return 2, true
	case secs > 0:
		return 1, true
	default:
		return 0, false
	}
}
