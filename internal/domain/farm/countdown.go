package farm

// Countdown is a polled timer. Start arms it, Tick drains it, and the tick
// that crosses zero reports completion exactly once. A countdown holds no
// callbacks; owners inspect it each frame.
type Countdown struct {
	Duration  float64
	Remaining float64
}

// NewCountdown returns an idle countdown with the given duration in seconds.
func NewCountdown(duration float64) Countdown {
	return Countdown{Duration: duration}
}

// Start arms the countdown at its full duration.
func (c *Countdown) Start() { c.Remaining = c.Duration }

// Active reports whether time is still left.
func (c *Countdown) Active() bool { return c.Remaining > 0 }

// Tick advances the countdown by dt seconds and returns true on the tick
// that finishes it. Further ticks on an idle countdown return false.
func (c *Countdown) Tick(dt float64) bool {
	if c.Remaining <= 0 {
		return false
	}
	c.Remaining -= dt
	if c.Remaining <= 0 {
		c.Remaining = 0
		return true
	}
	return false
}
