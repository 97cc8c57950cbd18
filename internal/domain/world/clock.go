// Package world holds the farm's environment state: the in-day clock, the
// end-of-day transition, weather rolls, and the generated terrain layout.
package world

type Phase string

const (
	PhaseDay     Phase = "day"
	PhaseEvening Phase = "evening"
)

// eveningShare is the fraction of the day after which light turns evening.
const eveningShare = 0.7

// DefaultDaySeconds is the wall-time length of one in-game day.
const DefaultDaySeconds = 600.0

// Clock tracks elapsed time inside the current day. It is stepped by the
// session frame loop and reset at every day boundary.
type Clock struct {
	daySeconds float64
	elapsed    float64
}

func NewClock(daySeconds float64) *Clock {
	if daySeconds <= 0 {
		daySeconds = DefaultDaySeconds
	}
	return &Clock{daySeconds: daySeconds}
}

// Tick advances the clock by dt seconds, saturating at the end of the day.
func (c *Clock) Tick(dt float64) {
	c.elapsed += dt
	if c.elapsed > c.daySeconds {
		c.elapsed = c.daySeconds
	}
}

// Reset rewinds the clock to dawn.
func (c *Clock) Reset() { c.elapsed = 0 }

// Fraction returns the day progress in [0, 1].
func (c *Clock) Fraction() float64 {
	if c.daySeconds <= 0 {
		return 0
	}
	return c.elapsed / c.daySeconds
}

// PhaseNow returns the current light phase.
func (c *Clock) PhaseNow() Phase {
	if c.Fraction() < eveningShare {
		return PhaseDay
	}
	return PhaseEvening
}
