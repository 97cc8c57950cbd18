package replay

import (
	"context"
	"errors"
	"strings"

	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.SessionID) == "" {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListBySession(ctx, req.SessionID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByTimeWindow(events, req.OccurredFrom, req.OccurredTo)
	return Response{Events: events, Summary: summarize(events)}, nil
}

func filterByTimeWindow(events []farm.DomainEvent, from, to int64) []farm.DomainEvent {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]farm.DomainEvent, 0, len(events))
	for _, evt := range events {
		ts := evt.OccurredAt.Unix()
		if from > 0 && ts < from {
			continue
		}
		if to > 0 && ts > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// summarize folds the window into totals. Payload numbers arrive as float64
// after a JSON round trip, so the coercion helper covers both forms.
func summarize(events []farm.DomainEvent) Summary {
	var s Summary
	for _, evt := range events {
		switch evt.Type {
		case farm.EventDayAdvanced:
			s.DaysAdvanced++
			if flag(evt.Payload["raining"]) {
				s.RainyDays++
			}
			if day := int(num(evt.Payload["day"])); day > s.LastDay {
				s.LastDay = day
			}
		case farm.EventActionCommitted:
			s.ActionsCommitted++
			if flag(evt.Payload["applied"]) {
				s.ActionsApplied++
			}
		case farm.EventHarvested:
			s.Harvests += int(num(evt.Payload["count"]))
		case farm.EventPurchase:
			s.MoneySpent += int(num(evt.Payload["spent"]))
		case farm.EventSale:
			s.MoneyEarned += int(num(evt.Payload["earned"]))
		}
	}
	return s
}

func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}

func flag(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
