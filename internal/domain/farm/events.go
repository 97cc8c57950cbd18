package farm

import "time"

// ResultCode classifies how an intent resolved. Rejected intents are normal
// gameplay outcomes, not errors.
type ResultCode string

const (
	ResultOK       ResultCode = "OK"
	ResultRejected ResultCode = "REJECTED"
)

// DomainEvent is one journaled farm happening: a committed action, a day
// advance, a trade, a save. Payload carries event-specific fields and must
// stay JSON-encodable.
type DomainEvent struct {
	ID         string         `json:"id"`
	SessionID  string         `json:"session_id"`
	AgentID    string         `json:"agent_id"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Journaled event types.
const (
	EventActionCommitted = "action_committed"
	EventHarvested       = "harvested"
	EventDayAdvanced     = "day_advanced"
	EventPurchase        = "shop_purchase"
	EventSale            = "shop_sale"
	EventSaved           = "session_saved"
	EventLoaded          = "session_loaded"
)
