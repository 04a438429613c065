package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TidyElephant/config"
	"TidyElephant/internal/cache"
	"TidyElephant/internal/model"
	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/repository"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
	"TidyElephant/pkg/metrics"
	"TidyElephant/pkg/snowflake"
	"TidyElephant/pkg/token"
	"TidyElephant/pkg/verify"
	"TidyElephant/utils"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// VerificationService 手机验证状态机 + 登录发号
type VerificationService struct {
	users      *repository.UserRepo
	onboarding *repository.OnboardingRepo
	client     verify.Client
}

func NewVerificationService(users *repository.UserRepo, onboarding *repository.OnboardingRepo, client verify.Client) *VerificationService {
	return &VerificationService{
		users:      users,
		onboarding: onboarding,
		client:     client,
	}
}

// ResendDelay 第 attempts 次之后的重发冷却秒数
func ResendDelay(attempts int) int {
	delay := config.Cfg.VerifyResendBaseDelay + attempts*config.Cfg.VerifyResendDelayStep
	if delay > config.Cfg.VerifyResendMaxDelay {
		delay = config.Cfg.VerifyResendMaxDelay
	}
	return delay
}

// SendCode 下发验证码：归一化 → 线路类型检查 → 重发治理 → 供应商下发
func (s *VerificationService) SendCode(ctx context.Context, phone string) (*dto.SendCodeResponse, error) {
	e164, err := utils.NormalizePhone(phone)
	if err != nil {
		return nil, pkgerrors.InvalidPhoneNumber
	}
	phoneHash := utils.HashPhone(e164)

	remaining, err := cache.ResendCooldownRemaining(ctx, phoneHash)
	if err != nil {
		return nil, fmt.Errorf("failed to check resend cooldown: %w", err)
	}
	if remaining > 0 {
		return nil, pkgerrors.VerificationResendCooldown
	}

	attempts, err := cache.GetSendAttempts(ctx, phoneHash)
	if err != nil {
		return nil, fmt.Errorf("failed to check send attempts: %w", err)
	}
	if attempts >= config.Cfg.VerifyMaxSendAttempts {
		return nil, pkgerrors.VerificationMaxSendAttempts
	}

	if err := cache.SetVerificationState(ctx, phoneHash, cache.VerifyStateSendingCode); err != nil {
		return nil, fmt.Errorf("failed to set verification state: %w", err)
	}

	lineType, err := s.client.LookupLineType(ctx, e164)
	if err != nil {
		cache.ClearVerificationState(ctx, phoneHash)
		metrics.GetMetrics().RecordVerificationSend(ctx, "lookup_failed")
		return nil, s.mapVendorError(err)
	}
	// 只放行手机号段。unknown 例外：Lookup 对部分运营商没有线路数据，
	// 真实手机会被标成 unknown，拦下的只有明确的 landline/voip
	if lineType != verify.LineTypeMobile && lineType != verify.LineTypeUnknown {
		cache.ClearVerificationState(ctx, phoneHash)
		metrics.GetMetrics().RecordVerificationSend(ctx, "not_mobile")
		return nil, pkgerrors.PhoneNotMobile
	}

	if err := s.client.StartVerification(ctx, e164); err != nil {
		cache.SetVerificationState(ctx, phoneHash, cache.VerifyStateCodeInvalid)
		metrics.GetMetrics().RecordVerificationSend(ctx, "vendor_failed")
		logger.Logger.Error("failed to start verification",
			zap.String("phone_hash", phoneHash),
			zap.Error(err),
		)
		return nil, s.mapVendorError(err)
	}

	attempts, err = cache.IncrSendAttempts(ctx, phoneHash)
	if err != nil {
		return nil, fmt.Errorf("failed to increment send attempts: %w", err)
	}

	delay := ResendDelay(attempts)
	if err := cache.SetResendCooldown(ctx, phoneHash, time.Duration(delay)*time.Second); err != nil {
		logger.Logger.Warn("failed to set resend cooldown",
			zap.String("phone_hash", phoneHash),
			zap.Error(err),
		)
	}

	if err := cache.SetVerificationState(ctx, phoneHash, cache.VerifyStateCodeSent); err != nil {
		return nil, fmt.Errorf("failed to set verification state: %w", err)
	}

	metrics.GetMetrics().RecordVerificationSend(ctx, "ok")
	logger.Logger.Info("verification code sent",
		zap.String("phone_hash", phoneHash),
		zap.Int("attempts", attempts),
	)

	return &dto.SendCodeResponse{
		State:              string(cache.VerifyStateCodeSent),
		ResendAfterSeconds: delay,
		AttemptsUsed:       attempts,
		MaxAttempts:        config.Cfg.VerifyMaxSendAttempts,
	}, nil
}

// SubmitCode 校验验证码。失败码缓存的不对称性是刻意的：
// 消费过的验证码永远无法重放，重复的手误不再消耗供应商调用。
func (s *VerificationService) SubmitCode(ctx context.Context, phone, code string) (*dto.VerifyCodeResponse, error) {
	e164, err := utils.NormalizePhone(phone)
	if err != nil {
		return nil, pkgerrors.InvalidPhoneNumber
	}
	if !codePattern.MatchString(code) {
		return nil, pkgerrors.VerificationCodeMalformed
	}
	phoneHash := utils.HashPhone(e164)

	state, err := cache.GetVerificationState(ctx, phoneHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification state: %w", err)
	}
	if state == cache.VerifyStateIdle {
		return nil, pkgerrors.VerificationNotStarted
	}

	rejected, err := cache.IsCodeRejected(ctx, phoneHash, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check rejected codes: %w", err)
	}
	if rejected {
		// 短路：不打供应商
		metrics.GetMetrics().RecordVerificationCheck(ctx, "cached_reject")
		return nil, pkgerrors.VerificationCodeAlreadyTried
	}

	if err := cache.SetVerificationState(ctx, phoneHash, cache.VerifyStateChecking); err != nil {
		return nil, fmt.Errorf("failed to set verification state: %w", err)
	}

	approved, err := s.client.CheckCode(ctx, e164, code)
	if err != nil {
		cache.SetVerificationState(ctx, phoneHash, cache.VerifyStateCodeSent)
		metrics.GetMetrics().RecordVerificationCheck(ctx, "vendor_failed")
		return nil, s.mapVendorError(err)
	}

	if !approved {
		cache.MarkCodeRejected(ctx, phoneHash, code)
		cache.SetVerificationState(ctx, phoneHash, cache.VerifyStateCodeInvalid)
		metrics.GetMetrics().RecordVerificationCheck(ctx, "rejected")
		return nil, pkgerrors.VerificationCodeInvalid
	}

	user, err := s.findOrCreateUser(ctx, e164, phoneHash)
	if err != nil {
		return nil, err
	}

	// 验证通过即进入入驻流程：建出步骤链，Build Profile 成为 current。
	// 初始化幂等，老用户重新登录不会重置已推进的链
	if err := s.onboarding.InitializeSteps(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to initialize onboarding steps: %w", err)
	}

	// 终态由会话 TTL 自然过期
	cache.SetVerificationState(ctx, phoneHash, cache.VerifyStateVerified)
	cache.ClearRejectedCodes(ctx, phoneHash)

	userIDStr := fmt.Sprintf("%d", user.PublicID)
	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := cache.SetRefreshToken(ctx, userIDStr, refreshToken); err != nil {
		logger.Logger.Warn("failed to store refresh token",
			zap.String("user_id", userIDStr),
			zap.Error(err),
		)
	}

	metrics.GetMetrics().RecordVerificationCheck(ctx, "approved")
	logger.Logger.Info("phone verified",
		zap.Int64("public_id", user.PublicID),
	)

	masked, _ := utils.FormatDisplay(e164)

	return &dto.VerifyCodeResponse{
		State:        string(cache.VerifyStateVerified),
		PhoneMasked:  masked,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// Reset 提交的手机号变更时重置该号码的发送预算
func (s *VerificationService) Reset(ctx context.Context, phone string) error {
	e164, err := utils.NormalizePhone(phone)
	if err != nil {
		return pkgerrors.InvalidPhoneNumber
	}
	phoneHash := utils.HashPhone(e164)
	return cache.ClearVerificationState(ctx, phoneHash)
}

func (s *VerificationService) findOrCreateUser(ctx context.Context, e164, phoneHash string) (*model.User, error) {
	user, err := s.users.GetByPhoneHash(ctx, phoneHash)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user ID: %w", err)
	}

	cipher, err := utils.EncryptSecret(e164)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt phone: %w", err)
	}

	user = &model.User{
		PublicID:    publicID,
		Role:        model.UserRoleClient,
		PhoneCipher: cipher,
		PhoneHash:   &phoneHash,
		Status:      model.UserStatusOnboarding,
		Timezone:    "America/New_York",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logger.Logger.Info("new user created",
		zap.Int64("public_id", publicID),
	)
	return user, nil
}

func (s *VerificationService) mapVendorError(err error) error {
	switch {
	case errors.Is(err, verify.ErrThrottled):
		return pkgerrors.TooManyRequests
	case errors.Is(err, verify.ErrSessionNotFound):
		return pkgerrors.VerificationNotStarted
	case errors.Is(err, verify.ErrMaxCheckAttempts):
		return pkgerrors.VerificationMaxCheckAttempts
	default:
		return pkgerrors.VerificationUnavailable
	}
}
