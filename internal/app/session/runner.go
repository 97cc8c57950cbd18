package session

import (
	"context"
	"sync"
	"time"
)

// DefaultTickInterval is the frame period of the loop.
const DefaultTickInterval = 50 * time.Millisecond

// Runner drives a session at a fixed frame rate on one goroutine and
// serializes command access to it. The session itself stays lock-free; the
// runner's mutex is the single-writer boundary.
type Runner struct {
	mu      sync.Mutex
	session *Session

	interval time.Duration
	onError  func(error)

	stopOnce sync.Once
	stopped  chan struct{}
}

// NewRunner wraps a session. OnError, when non-nil, receives journaling and
// autosave errors surfaced by Step.
func NewRunner(s *Session, interval time.Duration, onError func(error)) *Runner {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Runner{
		session:  s,
		interval: interval,
		onError:  onError,
		stopped:  make(chan struct{}),
	}
}

// Start launches the frame loop. It returns immediately; the loop runs
// until Stop is called or ctx is cancelled. Frames use the fixed interval
// as dt, so simulated time tracks wall time under normal load.
func (r *Runner) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		dt := r.interval.Seconds()
		for {
			select {
			case <-ctx.Done():
				return
			case <-r.stopped:
				return
			case <-ticker.C:
				r.mu.Lock()
				err := r.session.Step(ctx, dt)
				r.mu.Unlock()
				if err != nil && r.onError != nil {
					r.onError(err)
				}
			}
		}
	}()
}

// Stop halts the frame loop. It is safe to call more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stopped) })
}

// Do runs fn against the session under the runner guard. Commands and
// read-side projections both go through here.
func (r *Runner) Do(fn func(*Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.session)
}

// StepN advances the session n frames of dt seconds each, under the guard.
// Tests use it to move time deterministically without the goroutine.
func (r *Runner) StepN(ctx context.Context, n int, dt float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := 0; i < n; i++ {
		if err := r.session.Step(ctx, dt); err != nil {
			return err
		}
	}
	return nil
}
