package ports

import (
	"context"
	"time"

	"farmverse/internal/domain/farm"
)

type ActionResult struct {
	Applied    bool
	ResultCode farm.ResultCode
	Message    string
}

type ActionExecutionRecord struct {
	AgentID        string
	IdempotencyKey string
	IntentType     string
	Result         ActionResult
	AppliedAt      time.Time
}

type ActionExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, agentID, key string) (*ActionExecutionRecord, error)
	SaveExecution(ctx context.Context, execution ActionExecutionRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, events []farm.DomainEvent) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]farm.DomainEvent, error)
}

type FarmSessionRecord struct {
	SessionID string
	AgentID   string
	Day       int
	Slot      int
	UpdatedAt time.Time
}

type SessionRepository interface {
	EnsureActive(ctx context.Context, sessionID, agentID string) error
	RecordProgress(ctx context.Context, record FarmSessionRecord) error
}

type AgentCredentialRecord struct {
	AgentID   string
	KeySalt   []byte
	KeyHash   []byte
	Status    string
	CreatedAt time.Time
}

type AgentCredentialRepository interface {
	Create(ctx context.Context, credential AgentCredentialRecord) error
	GetByAgentID(ctx context.Context, agentID string) (AgentCredentialRecord, error)
}
