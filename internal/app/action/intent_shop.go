package action

import (
	"context"
	"fmt"

	"farmverse/internal/app/session"
)

type buyHandler struct{}

func (h buyHandler) Apply(ctx context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	intent := ac.In.Intent
	if !s.Buy(ctx, intent.ItemID, intent.Count) {
		ac.Out = rejectedOutcome("item is not purchasable or money is short")
		return nil
	}
	ac.Out = appliedOutcome(fmt.Sprintf("bought %d %s", intent.Count, intent.ItemID))
	return nil
}

type sellHandler struct{}

func (h sellHandler) Apply(ctx context.Context, _ UseCase, s *session.Session, ac *IntentContext) error {
	intent := ac.In.Intent
	sold, earned := s.Sell(ctx, intent.ItemID, intent.Count)
	if sold == 0 {
		ac.Out = rejectedOutcome("nothing to sell")
		return nil
	}
	ac.Out = appliedOutcome(fmt.Sprintf("sold %d %s for %d", sold, intent.ItemID, earned))
	return nil
}
