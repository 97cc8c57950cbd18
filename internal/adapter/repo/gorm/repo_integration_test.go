package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"farmverse/internal/adapter/repo/gorm/model"
	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("FARMVERSE_DB_DSN")
	if dsn == "" {
		t.Skip("FARMVERSE_DB_DSN is required for integration test")
	}
	return dsn
}

func TestEventRepo_AppendAndListBySession(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	sessionID := "it-event-session"
	_ = db.Exec("DELETE FROM farm_events WHERE session_id = ?", sessionID).Error

	repo := NewEventRepo(db)
	if err := repo.Append(ctx, []farm.DomainEvent{
		{ID: "ev-1", SessionID: sessionID, AgentID: "it-farmer", Type: "day_advanced", OccurredAt: time.Unix(100, 0), Payload: map[string]any{"day": 1}},
		{ID: "ev-2", SessionID: sessionID, AgentID: "it-farmer", Type: "harvested", OccurredAt: time.Unix(200, 0), Payload: map[string]any{"count": 2}},
	}); err != nil {
		t.Fatalf("append events: %v", err)
	}

	latest, err := repo.ListBySession(ctx, sessionID, 1)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(latest) != 1 || latest[0].Type != "harvested" {
		t.Fatalf("expected only latest event, got=%+v", latest)
	}
	all, err := repo.ListBySession(ctx, sessionID, 0)
	if err != nil {
		t.Fatalf("list all events: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 events, got %d", len(all))
	}
	if all[0].Payload["count"] != float64(2) {
		t.Fatalf("expected payload round trip, got %+v", all[0].Payload)
	}
}

func TestActionExecutionRepo_SaveGetAndDuplicateKey(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	agentID := "it-action-exec"
	_ = db.Exec("DELETE FROM action_executions WHERE agent_id = ?", agentID).Error

	repo := NewActionExecutionRepo(db)
	rec := ports.ActionExecutionRecord{
		AgentID:        agentID,
		IdempotencyKey: "key-1",
		IntentType:     "use",
		Result: ports.ActionResult{
			Applied:    true,
			ResultCode: farm.ResultOK,
			Message:    "tilled",
		},
		AppliedAt: time.Unix(20, 0),
	}
	if err := repo.SaveExecution(ctx, rec); err != nil {
		t.Fatalf("save execution: %v", err)
	}
	got, err := repo.GetByIdempotencyKey(ctx, agentID, "key-1")
	if err != nil {
		t.Fatalf("get execution: %v", err)
	}
	if !got.Result.Applied || got.Result.ResultCode != farm.ResultOK || got.Result.Message != "tilled" {
		t.Fatalf("unexpected stored result: %+v", got.Result)
	}
	if err := repo.SaveExecution(ctx, rec); err != ports.ErrConflict {
		t.Fatalf("expected conflict on duplicate key, got %v", err)
	}
	if _, err := repo.GetByIdempotencyKey(ctx, agentID, "missing"); err != ports.ErrNotFound {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}
}

func TestAgentCredentialRepo_CreateGetAndConflict(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	agentID := "it-agent-credential"
	_ = db.Exec("DELETE FROM agent_credentials WHERE agent_id = ?", agentID).Error

	repo := NewAgentCredentialRepo(db)
	rec := ports.AgentCredentialRecord{
		AgentID:   agentID,
		KeySalt:   []byte("salt"),
		KeyHash:   []byte("hash"),
		Status:    "active",
		CreatedAt: time.Unix(1000, 0).UTC(),
	}
	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("create credential: %v", err)
	}
	got, err := repo.GetByAgentID(ctx, agentID)
	if err != nil {
		t.Fatalf("get credential: %v", err)
	}
	if got.AgentID != agentID || got.Status != "active" {
		t.Fatalf("unexpected credential: %+v", got)
	}
	if err := repo.Create(ctx, rec); err != ports.ErrConflict {
		t.Fatalf("expected conflict on duplicate create, got %v", err)
	}
	if _, err := repo.GetByAgentID(ctx, agentID+"-missing"); err != ports.ErrNotFound {
		t.Fatalf("expected not found on missing credential, got %v", err)
	}
}

func TestFarmSessionRepo_EnsureActiveAndRecordProgress(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	sessionID := "it-farm-session"
	agentID := "it-farmer"
	_ = db.Exec("DELETE FROM farm_sessions WHERE session_id = ?", sessionID).Error

	repo := NewFarmSessionRepo(db)
	if err := repo.EnsureActive(ctx, sessionID, agentID); err != nil {
		t.Fatalf("ensure active: %v", err)
	}
	if err := repo.EnsureActive(ctx, sessionID, agentID); err != nil {
		t.Fatalf("ensure active twice should be a no-op: %v", err)
	}
	if err := repo.RecordProgress(ctx, ports.FarmSessionRecord{
		SessionID: sessionID,
		AgentID:   agentID,
		Day:       4,
		Slot:      2,
		UpdatedAt: time.Unix(5000, 0).UTC(),
	}); err != nil {
		t.Fatalf("record progress: %v", err)
	}

	var row model.FarmSession
	if err := db.Where("session_id = ?", sessionID).First(&row).Error; err != nil {
		t.Fatalf("query session: %v", err)
	}
	if row.Day != 4 || row.Slot != 2 || row.Status != "active" {
		t.Fatalf("unexpected session row: %+v", row)
	}

	unseen := "it-farm-session-unseen"
	_ = db.Exec("DELETE FROM farm_sessions WHERE session_id = ?", unseen).Error
	if err := repo.RecordProgress(ctx, ports.FarmSessionRecord{
		SessionID: unseen,
		AgentID:   agentID,
		Day:       1,
		Slot:      1,
		UpdatedAt: time.Unix(6000, 0).UTC(),
	}); err != nil {
		t.Fatalf("record progress for unseen session: %v", err)
	}
	if err := db.Where("session_id = ?", unseen).First(&row).Error; err != nil {
		t.Fatalf("expected unseen session inserted: %v", err)
	}
}

func TestTxManager_RunInTxCommitAndRollback(t *testing.T) {
	dsn := requireDSN(t)
	db, err := OpenPostgres(dsn)
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	ctx := context.Background()
	agentID := "it-tx-manager"
	_ = db.Exec("DELETE FROM agent_credentials WHERE agent_id LIKE ?", agentID+"%").Error

	txManager := NewTxManager(db)
	credRepo := NewAgentCredentialRepo(db)

	commitErr := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return credRepo.Create(txCtx, ports.AgentCredentialRecord{
			AgentID: agentID,
			KeySalt: []byte("s"),
			KeyHash: []byte("h"),
			Status:  "active",
		})
	})
	if commitErr != nil {
		t.Fatalf("commit tx failed: %v", commitErr)
	}
	if _, err := credRepo.GetByAgentID(ctx, agentID); err != nil {
		t.Fatalf("expected committed credential exists, got err=%v", err)
	}

	rollbackErr := txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := credRepo.Create(txCtx, ports.AgentCredentialRecord{
			AgentID: agentID + "-rb",
			KeySalt: []byte("s"),
			KeyHash: []byte("h"),
			Status:  "active",
		}); err != nil {
			return err
		}
		return errors.New("force rollback")
	})
	if rollbackErr == nil {
		t.Fatalf("expected rollback error")
	}
	if _, err := credRepo.GetByAgentID(ctx, agentID+"-rb"); err != ports.ErrNotFound {
		t.Fatalf("expected rollback to remove credential, got err=%v", err)
	}
}
