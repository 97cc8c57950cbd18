package gormrepo

import (
	"context"
	"errors"

	"farmverse/internal/adapter/repo/gorm/model"
	"farmverse/internal/app/ports"
	"farmverse/internal/domain/farm"

	"gorm.io/gorm"
)

type ActionExecutionRepo struct {
	db *gorm.DB
}

func NewActionExecutionRepo(db *gorm.DB) ActionExecutionRepo {
	return ActionExecutionRepo{db: db}
}

func (r ActionExecutionRepo) GetByIdempotencyKey(ctx context.Context, agentID, key string) (*ports.ActionExecutionRecord, error) {
	var m model.ActionExecution
	err := getDBFromCtx(ctx, r.db).
		Where(&model.ActionExecution{AgentID: agentID, IdempotencyKey: key}).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return &ports.ActionExecutionRecord{
		AgentID:        m.AgentID,
		IdempotencyKey: m.IdempotencyKey,
		IntentType:     m.IntentType,
		Result: ports.ActionResult{
			Applied:    m.Applied,
			ResultCode: farm.ResultCode(m.ResultCode),
			Message:    m.Message,
		},
		AppliedAt: m.AppliedAt,
	}, nil
}

func (r ActionExecutionRepo) SaveExecution(ctx context.Context, execution ports.ActionExecutionRecord) error {
	m := model.ActionExecution{
		AgentID:        execution.AgentID,
		IdempotencyKey: execution.IdempotencyKey,
		IntentType:     execution.IntentType,
		Applied:        execution.Result.Applied,
		ResultCode:     string(execution.Result.ResultCode),
		Message:        execution.Result.Message,
		AppliedAt:      execution.AppliedAt,
	}
	if err := getDBFromCtx(ctx, r.db).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}
