package repository

import (
	"context"
	"time"

	"TidyElephant/internal/model"
	"TidyElephant/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OnboardingRepo 入驻步骤表访问，推进逻辑全部走事务
type OnboardingRepo struct {
	db *gorm.DB
}

func NewOnboardingRepo(db *gorm.DB) *OnboardingRepo {
	return &OnboardingRepo{db: db}
}

// InitializeSteps 为用户建出整条步骤链，第一步 current 其余 upcoming。
// 已存在记录时整体跳过，重复调用是 no-op。
func (r *OnboardingRepo) InitializeSteps(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.OnboardingStep{}).
			Where("user_id = ?", userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		steps := make([]model.OnboardingStep, 0, len(model.StepSequence))
		for i, name := range model.StepSequence {
			status := model.StepStatusUpcoming
			if i == 0 {
				status = model.StepStatusCurrent
			}
			steps = append(steps, model.OnboardingStep{
				UserID:      userID,
				Name:        name,
				Description: model.StepDescriptions[name],
				SortOrder:   i,
				Status:      status,
			})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&steps).Error
	})
}

// ListSteps 按顺序返回用户的全部步骤
func (r *OnboardingRepo) ListSteps(ctx context.Context, userID int64) ([]model.OnboardingStep, error) {
	var steps []model.OnboardingStep
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("sort_order ASC").
		Find(&steps).Error
	return steps, err
}

// CurrentStep 返回当前步骤，整条链已完成时返回 OnboardingFlowComplete
func (r *OnboardingRepo) CurrentStep(ctx context.Context, userID int64) (*model.OnboardingStep, error) {
	var step model.OnboardingStep
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, model.StepStatusCurrent).
		First(&step).Error
	if err == gorm.ErrRecordNotFound {
		return nil, errors.OnboardingFlowComplete
	}
	if err != nil {
		return nil, err
	}
	return &step, nil
}

// CompleteStep 在一个事务里把指定步骤置 complete 并把下一步置 current。
// stepName 必须恰好是当前步骤，否则返回 OnboardingStepInvalid。
func (r *OnboardingRepo) CompleteStep(ctx context.Context, userID int64, stepName string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.OnboardingStep
		err := tx.Where("user_id = ? AND status = ?", userID, model.StepStatusCurrent).
			First(&current).Error
		if err == gorm.ErrRecordNotFound {
			return errors.OnboardingFlowComplete
		}
		if err != nil {
			return err
		}
		if current.Name != stepName {
			return errors.OnboardingStepInvalid
		}

		now := time.Now()
		if err := tx.Model(&model.OnboardingStep{}).
			Where("id = ?", current.ID).
			Updates(map[string]interface{}{
				"status":       model.StepStatusComplete,
				"completed_at": &now,
			}).Error; err != nil {
			return err
		}

		// 下一步从 upcoming 提成 current，没有下一步说明整条链走完
		return tx.Model(&model.OnboardingStep{}).
			Where("user_id = ? AND sort_order = ? AND status = ?",
				userID, current.SortOrder+1, model.StepStatusUpcoming).
			Update("status", model.StepStatusCurrent).Error
	})
}
