package replay

import "farmverse/internal/domain/farm"

type Request struct {
	SessionID    string
	Limit        int
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events  []farm.DomainEvent `json:"events"`
	Summary Summary            `json:"summary"`
}

// Summary condenses a journal window into the totals an agent debrief
// cares about.
type Summary struct {
	DaysAdvanced     int `json:"days_advanced"`
	RainyDays        int `json:"rainy_days"`
	ActionsCommitted int `json:"actions_committed"`
	ActionsApplied   int `json:"actions_applied"`
	Harvests         int `json:"harvests"`
	MoneySpent       int `json:"money_spent"`
	MoneyEarned      int `json:"money_earned"`
	LastDay          int `json:"last_day"`
}
