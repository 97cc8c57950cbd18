package action

import (
	"context"

	"farmverse/internal/app/session"
)

type selectSlotHandler struct{}

func (h selectSlotHandler) Apply(_ context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	if !s.SelectSlot(ac.In.Intent.Slot) {
		ac.Out = rejectedOutcome("slot switch throttled")
		return nil
	}
	ac.Out = appliedOutcome("")
	return nil
}

type assignSlotHandler struct{}

func (h assignSlotHandler) Apply(_ context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	if !s.AssignSlot(ac.In.Intent.Slot, ac.In.Intent.ItemID) {
		ac.Out = rejectedOutcome("item is not a tool or seed")
		return nil
	}
	ac.Out = appliedOutcome("")
	return nil
}

type useHandler struct{}

func (h useHandler) Apply(ctx context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	if !s.Use(ctx) {
		ac.Out = rejectedOutcome("selected item cannot be used now")
		return nil
	}
	ac.Out = appliedOutcome("")
	return nil
}

type moveHandler struct{}

func (h moveHandler) Apply(_ context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	s.Move(ac.In.Intent.DX, ac.In.Intent.DY)
	ac.Out = appliedOutcome("")
	return nil
}

type endDayHandler struct{}

func (h endDayHandler) Apply(_ context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	if !s.EndDay() {
		ac.Out = rejectedOutcome("day transition already running")
		return nil
	}
	ac.Out = appliedOutcome("")
	return nil
}
