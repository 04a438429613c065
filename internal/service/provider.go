package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"TidyElephant/config"
	"TidyElephant/internal/model"
	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/repository"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
	"TidyElephant/utils"
)

// ProviderService 服务商档案创建与校验
type ProviderService struct {
	users      *repository.UserRepo
	providers  *repository.ProviderRepo
	onboarding *OnboardingService
}

func NewProviderService(users *repository.UserRepo, providers *repository.ProviderRepo, onboarding *OnboardingService) *ProviderService {
	return &ProviderService{
		users:      users,
		providers:  providers,
		onboarding: onboarding,
	}
}

// CreateProfile 创建服务商档案，完成后推进 Build Profile 步骤
func (s *ProviderService) CreateProfile(ctx context.Context, publicID int64, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}
	if !user.PhoneVerified() {
		return nil, pkgerrors.PhoneNotVerified
	}

	if req.HourlyRateCents <= 0 {
		return nil, pkgerrors.InvalidPrice
	}
	if req.EIN != "" {
		if err := utils.ValidateEIN(req.EIN); err != nil {
			return nil, pkgerrors.InvalidEIN
		}
	}

	categoryIDs, err := s.parseCategoryIDs(req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	categories, err := s.providers.GetCategoriesByIDs(ctx, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) != len(categoryIDs) {
		return nil, pkgerrors.CategoryInvalid
	}

	if _, err := s.providers.GetByUserID(ctx, user.ID); err == nil {
		return nil, pkgerrors.ProfileAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	profile := &model.ProviderProfile{
		UserID:          user.ID,
		DisplayName:     req.DisplayName,
		Bio:             req.Bio,
		HourlyRateCents: req.HourlyRateCents,
		EIN:             req.EIN,
		ProvisionStatus: model.ProvisionStatusNone,
		Categories:      categories,
	}
	if err := s.providers.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if req.Address != nil {
		addr := &model.Address{
			UserID: user.ID,
			Line1:  req.Address.Line1,
			Line2:  req.Address.Line2,
			City:   req.Address.City,
			State:  req.Address.State,
			Zip:    req.Address.Zip,
		}
		if err := s.users.UpsertAddress(ctx, addr); err != nil {
			logger.Logger.Warn("failed to save address",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	if user.Role == model.UserRoleClient {
		user.Role = model.UserRoleBoth
		if err := s.users.Save(ctx, user); err != nil {
			logger.Logger.Warn("failed to update user role",
				zap.Int64("user_id", user.ID),
				zap.Error(err),
			)
		}
	}

	// 档案建好是一个业务事件，推进 Build Profile
	if err := s.onboarding.Initialize(ctx, user.ID); err != nil {
		return nil, err
	}
	if err := s.onboarding.CompleteStep(ctx, user.ID, model.StepBuildProfile); err != nil {
		// 步骤已推进过不算失败
		if err != pkgerrors.OnboardingStepInvalid && err != pkgerrors.OnboardingFlowComplete {
			return nil, err
		}
	}

	logger.Logger.Info("provider profile created",
		zap.Int64("user_id", user.ID),
		zap.Int("categories", len(categories)),
	)

	return buildProfileResponse(profile), nil
}

// GetProfile 查询当前用户的服务商档案
func (s *ProviderService) GetProfile(ctx context.Context, publicID int64) (*dto.ProfileResponse, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}

	profile, err := s.providers.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ProfileNotFound
		}
		return nil, fmt.Errorf("failed to query profile: %w", err)
	}

	resp := buildProfileResponse(profile)
	if addr, err := s.users.GetAddress(ctx, user.ID); err == nil {
		resp.Address = &dto.AddressData{
			Line1: addr.Line1,
			Line2: addr.Line2,
			City:  addr.City,
			State: addr.State,
			Zip:   addr.Zip,
		}
	}
	return resp, nil
}

// ListCategories 全量分类
func (s *ProviderService) ListCategories(ctx context.Context) ([]dto.CategoryData, error) {
	categories, err := s.providers.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	out := make([]dto.CategoryData, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.CategoryData{
			ID:   c.ID.String(),
			Name: c.Name,
			Slug: c.Slug,
		})
	}
	return out, nil
}

// parseCategoryIDs 1..N 个不重复的合法 UUID
func (s *ProviderService) parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, pkgerrors.CategorySelectionEmpty
	}
	if len(raw) > config.Cfg.ProviderMaxCategories {
		return nil, pkgerrors.CategorySelectionBounds
	}

	seen := make(map[uuid.UUID]bool, len(raw))
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, pkgerrors.CategoryInvalid
		}
		if seen[id] {
			return nil, pkgerrors.CategoryDuplicate
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func buildProfileResponse(profile *model.ProviderProfile) *dto.ProfileResponse {
	resp := &dto.ProfileResponse{
		DisplayName:     profile.DisplayName,
		Bio:             profile.Bio,
		HourlyRateCents: profile.HourlyRateCents,
		EIN:             profile.EIN,
		ProvisionStatus: string(profile.ProvisionStatus),
		FeePaid:         profile.FeePaid,
		Categories:      make([]dto.CategoryData, 0, len(profile.Categories)),
	}
	for _, c := range profile.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryData{
			ID:   c.ID.String(),
			Name: c.Name,
			Slug: c.Slug,
		})
	}
	return resp
}
