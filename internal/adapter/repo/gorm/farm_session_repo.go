package gormrepo

import (
	"context"
	"time"

	"farmverse/internal/adapter/repo/gorm/model"
	"farmverse/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FarmSessionRepo struct {
	db *gorm.DB
}

func NewFarmSessionRepo(db *gorm.DB) FarmSessionRepo {
	return FarmSessionRepo{db: db}
}

func (r FarmSessionRepo) EnsureActive(ctx context.Context, sessionID, agentID string) error {
	now := time.Now().UTC()
	m := model.FarmSession{
		SessionID: sessionID,
		AgentID:   agentID,
		Status:    "active",
		Slot:      1,
		StartedAt: now,
		UpdatedAt: now,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error
}

func (r FarmSessionRepo) RecordProgress(ctx context.Context, record ports.FarmSessionRecord) error {
	updates := map[string]any{
		"day":        int32(record.Day),
		"slot":       int32(record.Slot),
		"updated_at": record.UpdatedAt,
	}
	res := getDBFromCtx(ctx, r.db).
		Model(&model.FarmSession{}).
		Where(&model.FarmSession{SessionID: record.SessionID}).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return r.insertProgress(ctx, record)
	}
	return nil
}

// insertProgress covers sessions that were never registered, such as a boot
// session created before any agent called register.
func (r FarmSessionRepo) insertProgress(ctx context.Context, record ports.FarmSessionRecord) error {
	m := model.FarmSession{
		SessionID: record.SessionID,
		AgentID:   record.AgentID,
		Status:    "active",
		Day:       int32(record.Day),
		Slot:      int32(record.Slot),
		StartedAt: record.UpdatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	return getDBFromCtx(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(&m).Error
}
