package world

// DefaultTransitionSeconds is the length of the end-of-day fade.
const DefaultTransitionSeconds = 1.0

// DayCycle is the end-of-day transition: idle until begun, then running
// until its duration elapses, then idle again. Completion is reported
// exactly once per run; the consequences of a day change belong to the
// session, not the cycle.
type DayCycle struct {
	duration float64
	progress float64
	running  bool
}

func NewDayCycle(duration float64) *DayCycle {
	if duration <= 0 {
		duration = DefaultTransitionSeconds
	}
	return &DayCycle{duration: duration}
}

// Begin arms the transition. It reports false, without restarting, when a
// transition is already running.
func (d *DayCycle) Begin() bool {
	if d.running {
		return false
	}
	d.running = true
	d.progress = 0
	return true
}

// Running reports whether a transition is in flight.
func (d *DayCycle) Running() bool { return d.running }

// Tick advances a running transition by dt seconds and returns true on the
// tick that completes it. Ticks while idle do nothing.
func (d *DayCycle) Tick(dt float64) bool {
	if !d.running {
		return false
	}
	d.progress += dt
	if d.progress < d.duration {
		return false
	}
	d.running = false
	d.progress = 0
	return true
}
