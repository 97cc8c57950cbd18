package action

import (
	"context"
	"errors"
	"fmt"

	"farmverse/internal/app/ports"
	"farmverse/internal/app/session"
)

type saveHandler struct{}

func (h saveHandler) Apply(ctx context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	if _, err := s.SaveTo(ctx, ac.In.Intent.Slot); err != nil {
		return err
	}
	ac.Out = appliedOutcome(fmt.Sprintf("saved slot %d", s.CurrentSlot()))
	return nil
}

type loadHandler struct{}

func (h loadHandler) Apply(ctx context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	if err := s.LoadFrom(ctx, ac.In.Intent.Slot); err != nil {
		return err
	}
	ac.Out = appliedOutcome(fmt.Sprintf("loaded slot %d", s.CurrentSlot()))
	return nil
}

type deleteSlotHandler struct{}

func (h deleteSlotHandler) Apply(ctx context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	slot := ac.In.Intent.Slot
	if err := s.DeleteSlot(ctx, slot); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			ac.Out = rejectedOutcome(fmt.Sprintf("slot %d is empty", slot))
			return nil
		}
		return err
	}
	ac.Out = appliedOutcome(fmt.Sprintf("deleted slot %d", slot))
	return nil
}
