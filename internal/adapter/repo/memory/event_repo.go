package memory

import (
	"context"
	"sort"

	"farmverse/internal/domain/farm"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(_ context.Context, events []farm.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range events {
		r.store.events[e.SessionID] = append(r.store.events[e.SessionID], e)
	}
	return nil
}

func (r EventRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]farm.DomainEvent, error) {
	r.store.mu.RLock()
	stored := r.store.events[sessionID]
	out := make([]farm.DomainEvent, len(stored))
	copy(out, stored)
	r.store.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
