package memory

import (
	"context"

	"farmverse/internal/app/ports"
)

type AgentCredentialRepo struct {
	store *Store
}

func NewAgentCredentialRepo(store *Store) AgentCredentialRepo {
	return AgentCredentialRepo{store: store}
}

func (r AgentCredentialRepo) Create(_ context.Context, credential ports.AgentCredentialRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.credentials[credential.AgentID]; exists {
		return ports.ErrConflict
	}
	r.store.credentials[credential.AgentID] = credential
	return nil
}

func (r AgentCredentialRepo) GetByAgentID(_ context.Context, agentID string) (ports.AgentCredentialRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.credentials[agentID]
	if !ok {
		return ports.AgentCredentialRecord{}, ports.ErrNotFound
	}
	return rec, nil
}
