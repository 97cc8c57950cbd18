// Package session owns one running farm: the aggregate, the actuator, the
// day cycle, and their orchestration against persistence and the journal.
// All methods assume a single caller; the Runner serializes access.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"
	"farmverse/internal/domain/world"
)

// Config assembles a session. Saves is required; Journal, Sessions, and
// Metrics are optional and skipped when nil.
type Config struct {
	SessionID string
	AgentID   string

	Layout  world.Layout
	Catalog farm.Catalog

	Saves    ports.SaveStore
	Journal  ports.EventRepository
	Sessions ports.SessionRepository
	Metrics  ports.SessionMetrics

	DaySeconds        float64
	TransitionSeconds float64
	DefaultSlot       int

	Now  func() time.Time
	Rand func() float64
}

// Session is a live farm. Commands mutate state immediately under the
// runner guard; Step drives time forward at the frame rate.
type Session struct {
	ID      string
	AgentID string

	farm     *farm.Farm
	actuator *farm.Actuator
	cycle    *world.DayCycle
	clock    *world.Clock

	saves    ports.SaveStore
	journal  ports.EventRepository
	sessions ports.SessionRepository
	metrics  ports.SessionMetrics

	now  func() time.Time
	rand func() float64

	defaultSlot int
	currentSlot int

	heldX, heldY float64
	soilRevision int64
}

// New builds a session with a fresh farm grown from the layout.
func New(cfg Config) *Session {
	if cfg.SessionID == "" {
		cfg.SessionID = "farm-" + cfg.AgentID
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.Float64
	}
	if cfg.DefaultSlot <= 0 {
		cfg.DefaultSlot = 1
	}

	s := &Session{
		ID:          cfg.SessionID,
		AgentID:     cfg.AgentID,
		cycle:       world.NewDayCycle(cfg.TransitionSeconds),
		clock:       world.NewClock(cfg.DaySeconds),
		saves:       cfg.Saves,
		journal:     cfg.Journal,
		sessions:    cfg.Sessions,
		metrics:     cfg.Metrics,
		now:         cfg.Now,
		rand:        cfg.Rand,
		defaultSlot: cfg.DefaultSlot,
		currentSlot: cfg.DefaultSlot,
	}

	farmCfg := farm.Config{
		Width:        cfg.Layout.Width,
		Height:       cfg.Layout.Height,
		TileSize:     cfg.Layout.TileSize,
		Catalog:      cfg.Catalog,
		Spawn:        farm.Point{X: cfg.Layout.SpawnX, Y: cfg.Layout.SpawnY},
		OnSoilChange: func() { s.soilRevision++ },
	}
	if len(cfg.Layout.Farmable) == cfg.Layout.Width*cfg.Layout.Height && len(cfg.Layout.Farmable) > 0 {
		layout := cfg.Layout
		farmCfg.Farmable = layout.FarmableAt
	}
	for _, tree := range cfg.Layout.Trees {
		farmCfg.TreeSites = append(farmCfg.TreeSites, farm.TreeSite{
			Tile:   farm.Point{X: tree.X, Y: tree.Y},
			Apples: tree.Apples,
		})
	}
	s.farm = farm.New(farmCfg)
	s.actuator = farm.NewActuator()
	return s
}

// Farm exposes the aggregate for read-side projections. Callers must hold
// the runner guard and must not retain references across it.
func (s *Session) Farm() *farm.Farm { return s.farm }

// Day returns the current day counter.
func (s *Session) Day() int { return s.farm.Day }

// Raining reports today's weather.
func (s *Session) Raining() bool { return s.farm.Soil.Raining() }

// TimeOfDay returns the day progress in [0, 1].
func (s *Session) TimeOfDay() float64 { return s.clock.Fraction() }

// Phase returns the current light phase.
func (s *Session) Phase() world.Phase { return s.clock.PhaseNow() }

// TransitionRunning reports whether the end-of-day fade is in flight.
func (s *Session) TransitionRunning() bool { return s.cycle.Running() }

// SoilRevision increments whenever tilled soil layout changes; renderers use
// it to invalidate soil sprites.
func (s *Session) SoilRevision() int64 { return s.soilRevision }

// CurrentSlot returns the save slot the session is bound to.
func (s *Session) CurrentSlot() int { return s.currentSlot }

// PendingActions lists the in-flight actuator actions, tool before seed.
func (s *Session) PendingActions() []farm.PendingAction {
	var out []farm.PendingAction
	if p, ok := s.actuator.Pending(farm.ClassTool); ok {
		out = append(out, *p)
	}
	if p, ok := s.actuator.Pending(farm.ClassSeed); ok {
		out = append(out, *p)
	}
	return out
}

// Busy reports whether an action countdown is running.
func (s *Session) Busy() bool { return s.actuator.Busy() }

func (s *Session) newEvent(eventType string, payload map[string]any) farm.DomainEvent {
	return farm.DomainEvent{
		ID:         uuid.NewString(),
		SessionID:  s.ID,
		AgentID:    s.AgentID,
		Type:       eventType,
		Payload:    payload,
		OccurredAt: s.now(),
	}
}

func (s *Session) appendEvents(ctx context.Context, events ...farm.DomainEvent) error {
	if s.journal == nil || len(events) == 0 {
		return nil
	}
	return s.journal.Append(ctx, events)
}

func (s *Session) recordProgress(ctx context.Context) {
	if s.sessions == nil {
		return
	}
	_ = s.sessions.RecordProgress(ctx, ports.FarmSessionRecord{
		SessionID: s.ID,
		AgentID:   s.AgentID,
		Day:       s.farm.Day,
		Slot:      s.currentSlot,
		UpdatedAt: s.now(),
	})
}
