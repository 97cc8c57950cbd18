package memory

import (
	"context"
	"time"

	"farmverse/internal/app/ports"
)

type FarmSessionRepo struct {
	store *Store
}

func NewFarmSessionRepo(store *Store) FarmSessionRepo {
	return FarmSessionRepo{store: store}
}

func (r FarmSessionRepo) EnsureActive(_ context.Context, sessionID, agentID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.sessions[sessionID]; exists {
		return nil
	}
	r.store.sessions[sessionID] = ports.FarmSessionRecord{
		SessionID: sessionID,
		AgentID:   agentID,
		Slot:      1,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

func (r FarmSessionRepo) RecordProgress(_ context.Context, record ports.FarmSessionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.sessions[record.SessionID] = record
	return nil
}
