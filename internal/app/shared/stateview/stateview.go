// Package stateview builds read-side projections of a live session. The
// projections are plain data and safe to serialize; capturing one must
// happen under the session runner's guard.
package stateview

import (
	"farmverse/internal/app/session"
)

// State is the compact player-and-world view attached to intent responses
// and the status endpoint.
type State struct {
	Day          int            `json:"day"`
	TimeOfDay    float64        `json:"time_of_day"`
	Phase        string         `json:"phase"`
	Raining      bool           `json:"raining"`
	Transition   bool           `json:"transition"`
	Pos          [2]float64     `json:"pos"`
	Status       string         `json:"status"`
	Money        int            `json:"money"`
	SelectedSlot int            `json:"selected_slot"`
	SelectedID   string         `json:"selected_id"`
	Hotbar       []string       `json:"hotbar"`
	Busy         bool           `json:"busy"`
	Inventory    map[string]int `json:"inventory"`
	Seeds        map[string]int `json:"seed_inventory"`
	SoilRevision int64          `json:"soil_revision"`
}

// Capture snapshots the response-facing view of s. Callers must hold the
// runner guard; the returned value shares nothing with the session.
func Capture(s *session.Session) State {
	p := s.Farm().Player
	hotbar := make([]string, len(p.Hotbar))
	copy(hotbar, p.Hotbar)
	return State{
		Day:          s.Day(),
		TimeOfDay:    s.TimeOfDay(),
		Phase:        string(s.Phase()),
		Raining:      s.Raining(),
		Transition:   s.TransitionRunning(),
		Pos:          [2]float64{p.Pos.X, p.Pos.Y},
		Status:       p.Status,
		Money:        p.Money,
		SelectedSlot: p.Selected + 1,
		SelectedID:   p.SelectedID(),
		Hotbar:       hotbar,
		Busy:         s.Busy(),
		Inventory:    p.Items.Clone(),
		Seeds:        p.Seeds.Clone(),
		SoilRevision: s.SoilRevision(),
	}
}
