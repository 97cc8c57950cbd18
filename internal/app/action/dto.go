package action

import (
	"farmverse/internal/app/shared/stateview"
	"farmverse/internal/domain/farm"
)

type IntentType string

const (
	IntentSelectSlot IntentType = "select_slot"
	IntentAssignSlot IntentType = "assign_slot"
	IntentUse        IntentType = "use"
	IntentMove       IntentType = "move"
	IntentEndDay     IntentType = "end_day"
	IntentBuy        IntentType = "buy"
	IntentSell       IntentType = "sell"
	IntentSave       IntentType = "save"
	IntentLoad       IntentType = "load"
	IntentDeleteSlot IntentType = "delete_slot"
)

// Intent is the wire form of a single agent command. Direction is an
// alternative to DX/DY for movement and wins when both are present.
type Intent struct {
	Type      IntentType `json:"type"`
	Slot      int        `json:"slot,omitempty"`
	ItemID    string     `json:"item_id,omitempty"`
	DX        float64    `json:"dx,omitempty"`
	DY        float64    `json:"dy,omitempty"`
	Direction string     `json:"direction,omitempty"`
	Count     int        `json:"count,omitempty"`
}

type Request struct {
	AgentID        string
	IdempotencyKey string
	Intent         Intent
}

// Response reports whether the intent applied and the post-intent view of
// the session. The view is always read fresh, including on idempotent
// replays, because the frame loop keeps moving between requests.
type Response struct {
	Applied    bool            `json:"applied"`
	ResultCode farm.ResultCode `json:"result_code"`
	Message    string          `json:"message,omitempty"`
	Replayed   bool            `json:"replayed,omitempty"`
	State      stateview.State `json:"state"`
}
