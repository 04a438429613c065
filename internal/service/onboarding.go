package service

import (
	"context"

	"go.uber.org/zap"

	"TidyElephant/internal/model"
	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/repository"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
)

// OnboardingService 入驻步骤链的初始化与推进。
// Initialize / CompleteStep 收内部 user.ID，Progress 收 JWT 里的 public_id。
type OnboardingService struct {
	users *repository.UserRepo
	steps *repository.OnboardingRepo
}

func NewOnboardingService(users *repository.UserRepo, steps *repository.OnboardingRepo) *OnboardingService {
	return &OnboardingService{users: users, steps: steps}
}

// Initialize 幂等建链：已有记录直接成功
func (s *OnboardingService) Initialize(ctx context.Context, userID int64) error {
	return s.steps.InitializeSteps(ctx, userID)
}

// Progress 返回有序步骤链，首次访问时顺手建链
func (s *OnboardingService) Progress(ctx context.Context, publicID int64) (*dto.OnboardingProgressResponse, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}
	userID := user.ID

	if err := s.steps.InitializeSteps(ctx, userID); err != nil {
		return nil, err
	}

	steps, err := s.steps.ListSteps(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.OnboardingProgressResponse{
		Steps:    make([]dto.OnboardingStepData, 0, len(steps)),
		Complete: true,
	}
	for _, step := range steps {
		if step.Status != model.StepStatusComplete {
			resp.Complete = false
		}
		resp.Steps = append(resp.Steps, dto.OnboardingStepData{
			Name:        step.Name,
			Description: step.Description,
			SortOrder:   step.SortOrder,
			Status:      string(step.Status),
			CompletedAt: step.CompletedAt,
		})
	}
	return resp, nil
}

// CompleteStep 业务事件驱动的推进：当前步骤置 complete，下一步提成 current
func (s *OnboardingService) CompleteStep(ctx context.Context, userID int64, stepName string) error {
	if err := s.steps.CompleteStep(ctx, userID, stepName); err != nil {
		return err
	}

	logger.Logger.Info("onboarding step completed",
		zap.Int64("user_id", userID),
		zap.String("step", stepName),
	)
	return nil
}
