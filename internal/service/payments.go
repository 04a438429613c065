package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TidyElephant/config"
	"TidyElephant/internal/model"
	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/repository"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
	"TidyElephant/pkg/metrics"
	"TidyElephant/pkg/payments"
)

// 三种互斥视图
const (
	accountViewSetup    = "setup"
	accountViewResume   = "resume"
	accountViewComplete = "complete"
)

// PaymentsService connected account 开户、状态查询、入驻费
type PaymentsService struct {
	users      *repository.UserRepo
	providers  *repository.ProviderRepo
	txns       *repository.PaymentRepo
	onboarding *OnboardingService
	client     payments.Client
}

func NewPaymentsService(
	users *repository.UserRepo,
	providers *repository.ProviderRepo,
	txns *repository.PaymentRepo,
	onboarding *OnboardingService,
	client payments.Client,
) *PaymentsService {
	return &PaymentsService{
		users:      users,
		providers:  providers,
		txns:       txns,
		onboarding: onboarding,
		client:     client,
	}
}

// CreateConnectAccount 白名单校验后在支付方侧开户，账户 ID 落到档案上
func (s *PaymentsService) CreateConnectAccount(ctx context.Context, publicID int64, req *dto.CreateAccountRequest) (*dto.AccountSetupResponse, error) {
	user, profile, err := s.loadProvider(ctx, publicID)
	if err != nil {
		return nil, err
	}

	// 已有账户直接走状态分支，不重复开户
	if profile.StripeAccountID != "" {
		return s.resumeOrComplete(ctx, profile)
	}

	seed := payments.AccountSeed{
		Email:        user.Email,
		BusinessType: req.BusinessType,
		BusinessName: req.BusinessName,
		ProductDesc:  req.ProductDesc,
	}
	if err := payments.ValidateSeed(seed); err != nil {
		return nil, pkgerrors.InvalidAccountInfo
	}

	accountID, err := s.client.CreateConnectAccount(ctx, seed)
	if err != nil {
		if err == pkgerrors.InvalidAccountInfo {
			return nil, err
		}
		logger.Logger.Error("connect account creation failed",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
		return nil, pkgerrors.PaymentProviderUnavailable
	}

	if err := s.providers.UpdateFields(ctx, user.ID, map[string]interface{}{
		"stripe_account_id": accountID,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist account id: %w", err)
	}

	link, err := s.client.CreateOnboardingLink(ctx, accountID)
	if err != nil {
		return nil, pkgerrors.PaymentProviderUnavailable
	}

	return &dto.AccountSetupResponse{
		View:          accountViewSetup,
		AccountID:     accountID,
		OnboardingURL: link,
	}, nil
}

// AccountStatus 实时拉取账户状态并选出三种互斥视图之一：
// setup（没开过户）/ resume（待补材料，重新生成链接）/ complete（可以进排期）
func (s *PaymentsService) AccountStatus(ctx context.Context, publicID int64) (*dto.AccountStatusResponse, error) {
	_, profile, err := s.loadProvider(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if profile.StripeAccountID == "" {
		return &dto.AccountStatusResponse{View: accountViewSetup}, nil
	}

	status, err := s.client.GetAccountStatus(ctx, profile.StripeAccountID)
	if err != nil {
		return nil, pkgerrors.PaymentProviderUnavailable
	}

	view := accountViewComplete
	if status.OutstandingRequirements {
		view = accountViewResume
	}
	return &dto.AccountStatusResponse{
		View:                    view,
		AccountID:               status.AccountID,
		ChargesEnabled:          status.ChargesEnabled,
		PayoutsEnabled:          status.PayoutsEnabled,
		OutstandingRequirements: status.OutstandingRequirements,
	}, nil
}

// ResumeLink 给待补材料的账户重新生成一条一次性链接
func (s *PaymentsService) resumeOrComplete(ctx context.Context, profile *model.ProviderProfile) (*dto.AccountSetupResponse, error) {
	status, err := s.client.GetAccountStatus(ctx, profile.StripeAccountID)
	if err != nil {
		return nil, pkgerrors.PaymentProviderUnavailable
	}

	if !status.OutstandingRequirements {
		return &dto.AccountSetupResponse{
			View:      accountViewComplete,
			AccountID: profile.StripeAccountID,
		}, nil
	}

	link, err := s.client.CreateOnboardingLink(ctx, profile.StripeAccountID)
	if err != nil {
		return nil, pkgerrors.PaymentProviderUnavailable
	}
	return &dto.AccountSetupResponse{
		View:          accountViewResume,
		AccountID:     profile.StripeAccountID,
		OnboardingURL: link,
	}, nil
}

// ConfirmOnboardingFee 收入驻费并推进 Trust & Safety 之后的步骤
func (s *PaymentsService) ConfirmOnboardingFee(ctx context.Context, publicID int64) (*dto.ConfirmFeeResponse, error) {
	user, profile, err := s.loadProvider(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if profile.StripeAccountID == "" {
		return nil, pkgerrors.ConnectAccountMissing
	}
	if profile.FeePaid {
		return &dto.ConfirmFeeResponse{
			AmountCents: config.Cfg.OnboardingFeeCents,
			FeePaid:     true,
		}, nil
	}

	amount := config.Cfg.OnboardingFeeCents
	txn := &model.PaymentTransaction{
		UserID:      user.ID,
		Kind:        model.PaymentKindOnboardingFee,
		AmountCents: amount,
		Currency:    "usd",
		Status:      model.PaymentStatusPending,
	}
	if err := s.txns.Create(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	ref, err := s.client.ChargeOnboardingFee(ctx, profile.StripeAccountID, amount)
	if err != nil {
		s.txns.UpdateStatus(ctx, txn.ID, model.PaymentStatusFailed, "")
		metrics.GetMetrics().RecordOnboardingFee(ctx, "failed")
		return nil, pkgerrors.PaymentProviderUnavailable
	}

	if err := s.txns.UpdateStatus(ctx, txn.ID, model.PaymentStatusSucceeded, ref); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}
	if err := s.providers.UpdateFields(ctx, user.ID, map[string]interface{}{
		"fee_paid": true,
	}); err != nil {
		return nil, fmt.Errorf("failed to mark fee paid: %w", err)
	}

	// 交完费是业务事件：Trust & Safety → Onboarding Fee 依次推进
	for _, step := range []string{model.StepTrustSafety, model.StepOnboardingFee} {
		if err := s.onboarding.CompleteStep(ctx, user.ID, step); err != nil {
			if err != pkgerrors.OnboardingStepInvalid && err != pkgerrors.OnboardingFlowComplete {
				return nil, err
			}
			break
		}
	}

	// 入驻费是最后一步，链走完用户转为 active
	if err := s.users.UpdateStatus(ctx, user.ID, model.UserStatusActive); err != nil {
		logger.Logger.Warn("failed to activate user after fee payment",
			zap.Int64("user_id", user.ID),
			zap.Error(err),
		)
	}

	metrics.GetMetrics().RecordOnboardingFee(ctx, "ok")
	logger.Logger.Info("onboarding fee confirmed",
		zap.Int64("user_id", user.ID),
		zap.String("payment_ref", ref),
	)

	return &dto.ConfirmFeeResponse{
		PaymentRef:  ref,
		AmountCents: amount,
		FeePaid:     true,
	}, nil
}

func (s *PaymentsService) loadProvider(ctx context.Context, publicID int64) (*model.User, *model.ProviderProfile, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, nil, pkgerrors.UserNotFound
	}

	profile, err := s.providers.GetByUserID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, pkgerrors.ProfileNotFound
		}
		return nil, nil, fmt.Errorf("failed to query profile: %w", err)
	}
	return user, profile, nil
}
