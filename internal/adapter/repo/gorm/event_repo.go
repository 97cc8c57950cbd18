package gormrepo

import (
	"context"
	"encoding/json"

	"farmverse/internal/adapter/repo/gorm/model"
	"farmverse/internal/domain/farm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, events []farm.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]model.FarmEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, model.FarmEvent{
			EventID:    e.ID,
			SessionID:  e.SessionID,
			AgentID:    e.AgentID,
			Type:       e.Type,
			Payload:    b,
			OccurredAt: e.OccurredAt,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListBySession(ctx context.Context, sessionID string, limit int) ([]farm.DomainEvent, error) {
	rows := []model.FarmEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&model.FarmEvent{SessionID: sessionID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]farm.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, farm.DomainEvent{
			ID:         row.EventID,
			SessionID:  row.SessionID,
			AgentID:    row.AgentID,
			Type:       row.Type,
			Payload:    payload,
			OccurredAt: row.OccurredAt,
		})
	}
	return out, nil
}
