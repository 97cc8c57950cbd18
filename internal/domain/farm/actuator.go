package farm

// ActionClass separates tool swings from seed placements. One action of each
// class may be pending at a time.
type ActionClass string

const (
	ClassTool ActionClass = "tool"
	ClassSeed ActionClass = "seed"
)

// PendingAction is an armed player action waiting out its countdown. The
// target tile is frozen at start time; moving the intent after arming is not
// possible, and the effect applies when the countdown finishes.
type PendingAction struct {
	Class     ActionClass
	ID        string
	Target    Point
	Countdown Countdown
}

// Actuator tracks the player's pending actions and the hotbar switch
// cooldown. It owns timing only; committing effects is the farm's job.
type Actuator struct {
	tool *PendingAction
	seed *PendingAction

	switchCD Countdown
}

// NewActuator returns an idle actuator.
func NewActuator() *Actuator {
	return &Actuator{switchCD: NewCountdown(SlotSwitchSeconds)}
}

// Busy reports whether any action is pending. Movement input is ignored
// while busy.
func (a *Actuator) Busy() bool { return a.tool != nil || a.seed != nil }

// Pending returns the pending action of the given class, if any.
func (a *Actuator) Pending(class ActionClass) (*PendingAction, bool) {
	switch class {
	case ClassTool:
		if a.tool != nil {
			return a.tool, true
		}
	case ClassSeed:
		if a.seed != nil {
			return a.seed, true
		}
	}
	return nil, false
}

// StartTool arms a tool swing against the target tile. It fails while a tool
// action is already pending.
func (a *Actuator) StartTool(tool string, target Point) bool {
	if a.tool != nil {
		return false
	}
	p := &PendingAction{Class: ClassTool, ID: tool, Target: target, Countdown: NewCountdown(ToolUseSeconds)}
	p.Countdown.Start()
	a.tool = p
	return true
}

// StartSeed arms a seed placement against the target tile. It fails while a
// seed action is already pending. Seed availability is the caller's check.
func (a *Actuator) StartSeed(seed string, target Point) bool {
	if a.seed != nil {
		return false
	}
	p := &PendingAction{Class: ClassSeed, ID: seed, Target: target, Countdown: NewCountdown(SeedUseSeconds)}
	p.Countdown.Start()
	a.seed = p
	return true
}

// TrySwitch consumes the slot-switch cooldown. It returns false while a
// previous switch is still cooling down.
func (a *Actuator) TrySwitch() bool {
	if a.switchCD.Active() {
		return false
	}
	a.switchCD.Start()
	return true
}

// Tick advances all countdowns by dt and returns the actions that finished
// this tick, tool before seed. Finished actions are cleared from the
// actuator; the caller commits their effects.
func (a *Actuator) Tick(dt float64) []PendingAction {
	a.switchCD.Tick(dt)

	var done []PendingAction
	if a.tool != nil && a.tool.Countdown.Tick(dt) {
		done = append(done, *a.tool)
		a.tool = nil
	}
	if a.seed != nil && a.seed.Countdown.Tick(dt) {
		done = append(done, *a.seed)
		a.seed = nil
	}
	return done
}

// Reset drops any pending actions and cooldowns, for session restores.
func (a *Actuator) Reset() {
	a.tool = nil
	a.seed = nil
	a.switchCD = NewCountdown(SlotSwitchSeconds)
}
