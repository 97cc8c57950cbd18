package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"
)

type stubSaveStore struct {
	mu    sync.Mutex
	slots map[int]farm.Snapshot
	saves []int

	failSlots map[int]bool
}

func newStubSaveStore() *stubSaveStore {
	return &stubSaveStore{slots: map[int]farm.Snapshot{}, failSlots: map[int]bool{}}
}

func (s *stubSaveStore) Save(_ context.Context, slot int, snapshot farm.Snapshot) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves = append(s.saves, slot)
	if s.failSlots[slot] {
		return "", &ports.SaveError{Slot: slot, Err: errors.New("disk full")}
	}
	s.slots[slot] = snapshot
	return fmt.Sprintf("save_slot_%d.json", slot), nil
}

func (s *stubSaveStore) Load(_ context.Context, slot int) (farm.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.slots[slot]
	if !ok {
		return farm.Snapshot{}, &ports.LoadError{Slot: slot, Err: ports.ErrNotFound}
	}
	return snap, nil
}

func (s *stubSaveStore) ListSlots(context.Context) ([]ports.SlotInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ports.SlotInfo
	for slot := range s.slots {
		out = append(out, ports.SlotInfo{Slot: slot})
	}
	return out, nil
}

func (s *stubSaveStore) Delete(_ context.Context, slot int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, slot)
	return nil
}

type stubJournal struct {
	mu     sync.Mutex
	events []farm.DomainEvent
}

func (j *stubJournal) Append(_ context.Context, events []farm.DomainEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, events...)
	return nil
}

func (j *stubJournal) ListBySession(_ context.Context, sessionID string, limit int) ([]farm.DomainEvent, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []farm.DomainEvent
	for _, e := range j.events {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (j *stubJournal) byType(eventType string) []farm.DomainEvent {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []farm.DomainEvent
	for _, e := range j.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

type stubSessionMetrics struct {
	dayAdvances int
	saves       []bool
	saveRetries int
	loads       []bool
}

func (m *stubSessionMetrics) RecordDayAdvance()  { m.dayAdvances++ }
func (m *stubSessionMetrics) RecordSave(ok bool) { m.saves = append(m.saves, ok) }
func (m *stubSessionMetrics) RecordSaveRetry()   { m.saveRetries++ }
func (m *stubSessionMetrics) RecordLoad(ok bool) { m.loads = append(m.loads, ok) }

func testCatalog() farm.Catalog {
	return farm.Catalog{
		Tools: []string{farm.ToolHoe, farm.ToolWater, farm.ToolAxe, farm.ToolHarvest},
		Crops: []farm.CropDef{
			{Type: "corn", Seed: "corn_seed", Produce: "corn", Stages: 4, BuyPrice: 5, SellPrice: 10},
			{Type: "tomato", Seed: "tomato_seed", Produce: "tomato", Stages: 3, BuyPrice: 7, SellPrice: 20},
		},
		Materials: []farm.MaterialDef{
			{ID: "wood", SellPrice: 4},
			{ID: "apple", SellPrice: 2},
		},
	}
}

type sessionFixture struct {
	session *Session
	saves   *stubSaveStore
	journal *stubJournal
	metrics *stubSessionMetrics
}

func newFixture(opts ...func(*Config)) *sessionFixture {
	fx := &sessionFixture{
		saves:   newStubSaveStore(),
		journal: &stubJournal{},
		metrics: &stubSessionMetrics{},
	}
	cfg := Config{
		SessionID:         "farm-test",
		AgentID:           "agent-1",
		Catalog:           testCatalog(),
		Saves:             fx.saves,
		Journal:           fx.journal,
		Metrics:           fx.metrics,
		TransitionSeconds: 1.0,
		DaySeconds:        600,
		Now:               func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) },
		Rand:              func() float64 { return 0.9 },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	fx.session = New(cfg)
	return fx
}

func stepSeconds(s *Session, seconds, dt float64) {
	ctx := context.Background()
	steps := int(seconds/dt) + 1
	for i := 0; i < steps; i++ {
		_ = s.Step(ctx, dt)
	}
}
