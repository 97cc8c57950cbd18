package action

import (
	"context"
	"fmt"
	"testing"
	"time"

	worldmock "farmverse/internal/adapter/world/mock"
	"farmverse/internal/app/ports"
	"farmverse/internal/app/session"
	"farmverse/internal/domain/farm"
	"farmverse/internal/domain/world"
)

type stubTxManager struct{}

func (stubTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type stubActionRepo struct {
	byKey   map[string]ports.ActionExecutionRecord
	saveErr error
}

func newStubActionRepo() *stubActionRepo {
	return &stubActionRepo{byKey: map[string]ports.ActionExecutionRecord{}}
}

func (r *stubActionRepo) GetByIdempotencyKey(_ context.Context, agentID, key string) (*ports.ActionExecutionRecord, error) {
	record, ok := r.byKey[agentID+"|"+key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := record
	return &out, nil
}

func (r *stubActionRepo) SaveExecution(_ context.Context, execution ports.ActionExecutionRecord) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byKey[execution.AgentID+"|"+execution.IdempotencyKey] = execution
	return nil
}

type stubActionMetrics struct {
	successes map[farm.ResultCode]int
	conflicts int
	failures  int
}

func (m *stubActionMetrics) RecordSuccess(code farm.ResultCode) {
	if m.successes == nil {
		m.successes = map[farm.ResultCode]int{}
	}
	m.successes[code]++
}

func (m *stubActionMetrics) RecordConflict() { m.conflicts++ }

func (m *stubActionMetrics) RecordFailure() { m.failures++ }

type stubSaveStore struct {
	saves map[int]farm.Snapshot
}

func newStubSaveStore() *stubSaveStore {
	return &stubSaveStore{saves: map[int]farm.Snapshot{}}
}

func (s *stubSaveStore) Save(_ context.Context, slot int, snapshot farm.Snapshot) (string, error) {
	s.saves[slot] = snapshot
	return fmt.Sprintf("save_slot_%d.json", slot), nil
}

func (s *stubSaveStore) Load(_ context.Context, slot int) (farm.Snapshot, error) {
	snapshot, ok := s.saves[slot]
	if !ok {
		return farm.Snapshot{}, &ports.LoadError{Slot: slot, Err: ports.ErrNotFound}
	}
	return snapshot, nil
}

func (s *stubSaveStore) ListSlots(context.Context) ([]ports.SlotInfo, error) { return nil, nil }

func (s *stubSaveStore) Delete(_ context.Context, slot int) error {
	if _, ok := s.saves[slot]; !ok {
		return ports.ErrNotFound
	}
	delete(s.saves, slot)
	return nil
}

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

type engineFixture struct {
	uc      UseCase
	runner  *session.Runner
	session *session.Session
	repo    *stubActionRepo
	metrics *stubActionMetrics
	saves   *stubSaveStore
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	saves := newStubSaveStore()
	fixedNow := func() time.Time { return time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC) }
	layoutProvider := worldmock.Provider{Layout: world.Layout{
		Width:    8,
		Height:   8,
		TileSize: farm.TileSize,
		SpawnX:   4,
		SpawnY:   4,
	}}
	layout, err := layoutProvider.GenerateLayout(context.Background())
	if err != nil {
		t.Fatalf("generate layout: %v", err)
	}
	sess := session.New(session.Config{
		AgentID:           "farmer_test",
		Layout:            layout,
		Catalog:           testCatalog(),
		Saves:             saves,
		DaySeconds:        600,
		TransitionSeconds: 1,
		Now:               fixedNow,
		Rand:              func() float64 { return 0.9 },
	})
	runner := session.NewRunner(sess, 0, nil)
	repo := newStubActionRepo()
	metrics := &stubActionMetrics{}
	return &engineFixture{
		uc: UseCase{
			Runner:     runner,
			TxManager:  stubTxManager{},
			ActionRepo: repo,
			Metrics:    metrics,
			Now:        fixedNow,
		},
		runner:  runner,
		session: sess,
		repo:    repo,
		metrics: metrics,
		saves:   saves,
	}
}

func (f *engineFixture) execute(t *testing.T, key string, intent Intent) Response {
	t.Helper()
	resp, err := f.uc.Execute(context.Background(), Request{
		AgentID:        "farmer_test",
		IdempotencyKey: key,
		Intent:         intent,
	})
	if err != nil {
		t.Fatalf("execute %s: %v", intent.Type, err)
	}
	return resp
}

// stepSeconds advances the session clock by whole frames covering the
// given duration.
func (f *engineFixture) stepSeconds(t *testing.T, seconds float64) {
	t.Helper()
	const dt = 0.05
	n := int(seconds/dt) + 1
	if err := f.runner.StepN(context.Background(), n, dt); err != nil {
		t.Fatalf("step: %v", err)
	}
}
