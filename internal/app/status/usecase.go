// Package status answers the cheap liveness question: which session is
// running, where the player stands, and which save slots exist.
package status

import (
	"context"
	"errors"
	"strings"

	"farmverse/internal/app/ports"
	"farmverse/internal/app/session"
	"farmverse/internal/app/shared/stateview"
)

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Runner *session.Runner
	Saves  ports.SaveStore
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	agentID := strings.TrimSpace(req.AgentID)
	if agentID == "" {
		return Response{}, ErrInvalidRequest
	}

	var (
		out Response
		err error
	)
	u.Runner.Do(func(s *session.Session) {
		if agentID != s.AgentID {
			err = ports.ErrNotFound
			return
		}
		out = Response{
			SessionID:      s.ID,
			AgentID:        s.AgentID,
			State:          stateview.Capture(s),
			CurrentSlot:    s.CurrentSlot(),
			PendingActions: len(s.PendingActions()),
			Crops:          len(s.Farm().Soil.Crops()),
			TilledTiles:    s.Farm().Soil.CountTilled(),
		}
	})
	if err != nil {
		return Response{}, err
	}

	// Slot listing does disk work, so it stays outside the runner guard.
	if u.Saves != nil {
		slots, listErr := u.Saves.ListSlots(ctx)
		if listErr != nil {
			return Response{}, listErr
		}
		out.Slots = make([]SlotView, 0, len(slots))
		for _, slot := range slots {
			out.Slots = append(out.Slots, SlotView{Slot: slot.Slot, Path: slot.Path, SavedAt: slot.SavedAt})
		}
	}
	return out, nil
}
