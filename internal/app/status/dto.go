package status

import (
	"time"

	"farmverse/internal/app/shared/stateview"
)

type Request struct {
	AgentID string
}

type Response struct {
	SessionID      string          `json:"session_id"`
	AgentID        string          `json:"agent_id"`
	State          stateview.State `json:"state"`
	CurrentSlot    int             `json:"current_slot"`
	PendingActions int             `json:"pending_actions"`
	Crops          int             `json:"crops"`
	TilledTiles    int             `json:"tilled_tiles"`
	Slots          []SlotView      `json:"slots"`
}

type SlotView struct {
	Slot    int       `json:"slot"`
	Path    string    `json:"path"`
	SavedAt time.Time `json:"saved_at"`
}
