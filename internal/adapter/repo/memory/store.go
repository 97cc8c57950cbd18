// Package memory backs the repository ports with process-local maps. It is
// the default persistence when no database DSN is configured; restarts lose
// the journal and idempotency history but never the save files.
package memory

import (
	"sync"

	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"
)

type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	execution   map[string]ports.ActionExecutionRecord
	events      map[string][]farm.DomainEvent
	credentials map[string]ports.AgentCredentialRecord
	sessions    map[string]ports.FarmSessionRecord
}

func NewStore() *Store {
	return &Store{
		execution:   make(map[string]ports.ActionExecutionRecord),
		events:      make(map[string][]farm.DomainEvent),
		credentials: make(map[string]ports.AgentCredentialRecord),
		sessions:    make(map[string]ports.FarmSessionRecord),
	}
}

func execKey(agentID, key string) string {
	return agentID + "::" + key
}
