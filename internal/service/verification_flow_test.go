package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"TidyElephant/config"
	"TidyElephant/internal/cache"
	"TidyElephant/internal/model"
	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/repository"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
	"TidyElephant/pkg/payments"
	"TidyElephant/pkg/snowflake"
	"TidyElephant/pkg/token"
	"TidyElephant/pkg/verify"
	redisstore "TidyElephant/storage/redis"
	"TidyElephant/utils"
)

// flowHarness 把验证、入驻、支付三个服务架在内存 sqlite + miniredis 上
type flowHarness struct {
	db           *gorm.DB
	verification *VerificationService
	onboarding   *OnboardingService
	providers    *ProviderService
	payments     *PaymentsService
	verifyMock   *verify.MockClient
	payMock      *payments.MockClient
	users        *repository.UserRepo
	steps        *repository.OnboardingRepo
}

func setupFlowHarness(t *testing.T) *flowHarness {
	t.Helper()

	config.Cfg.JWTSecret = "flow-test-secret"
	config.Cfg.EncryptionKey = "0123456789abcdef0123456789abcdef"
	logger.Logger = zap.NewNop()
	require.NoError(t, snowflake.Init(1, 1))
	require.NoError(t, token.Init())

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })
	redisstore.SetClient(redisClient)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Address{},
		&model.OnboardingStep{},
		&model.Category{},
		&model.ProviderProfile{},
		&model.PaymentTransaction{},
	))

	users := repository.NewUserRepo(db)
	steps := repository.NewOnboardingRepo(db)
	providerRepo := repository.NewProviderRepo(db)
	txns := repository.NewPaymentRepo(db)

	verifyMock := verify.NewMockClient()
	payMock := payments.NewMockClient()

	onboardingSvc := NewOnboardingService(users, steps)

	return &flowHarness{
		db:           db,
		verification: NewVerificationService(users, steps, verifyMock),
		onboarding:   onboardingSvc,
		providers:    NewProviderService(users, providerRepo, onboardingSvc),
		payments:     NewPaymentsService(users, providerRepo, txns, onboardingSvc, payMock),
		verifyMock:   verifyMock,
		payMock:      payMock,
		users:        users,
		steps:        steps,
	}
}

func TestSubmitCodeCachesRejectedCode(t *testing.T) {
	ctx := context.Background()
	h := setupFlowHarness(t)
	phone := "+14155550132"

	_, err := h.verification.SendCode(ctx, phone)
	require.NoError(t, err)

	_, err = h.verification.SubmitCode(ctx, phone, "000000")
	assert.Equal(t, pkgerrors.VerificationCodeInvalid, err)

	// 同一个错码再提交要被缓存短路，不再打供应商
	_, err = h.verification.SubmitCode(ctx, phone, "000000")
	assert.Equal(t, pkgerrors.VerificationCodeAlreadyTried, err)
	assert.Equal(t, 1, h.verifyMock.CallCount("check"))

	// 换一个码是新的校验，要走供应商
	_, err = h.verification.SubmitCode(ctx, phone, "111111")
	assert.Equal(t, pkgerrors.VerificationCodeInvalid, err)
	assert.Equal(t, 2, h.verifyMock.CallCount("check"))
}

func TestSubmitCodeInitializesOnboarding(t *testing.T) {
	ctx := context.Background()
	h := setupFlowHarness(t)
	phone := "+14155550133"

	_, err := h.verification.SendCode(ctx, phone)
	require.NoError(t, err)

	resp, err := h.verification.SubmitCode(ctx, phone, "123456")
	require.NoError(t, err)
	assert.Equal(t, string(cache.VerifyStateVerified), resp.State)
	assert.NotEmpty(t, resp.AccessToken)

	user := h.lookupUser(t, phone)
	steps, err := h.steps.ListSteps(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, steps, len(model.StepSequence))
	assert.Equal(t, model.StepBuildProfile, steps[0].Name)
	assert.Equal(t, model.StepStatusCurrent, steps[0].Status)
}

// 完整走一遍：验证手机号 → 建档案 → 开户 → 交入驻费，步骤链随事件推进到底
func TestVerificationToFeeFlow(t *testing.T) {
	ctx := context.Background()
	h := setupFlowHarness(t)
	phone := "+14155550134"

	_, err := h.verification.SendCode(ctx, phone)
	require.NoError(t, err)
	_, err = h.verification.SubmitCode(ctx, phone, "123456")
	require.NoError(t, err)

	user := h.lookupUser(t, phone)

	category := model.Category{ID: uuid.New(), Name: "House Cleaning", Slug: "house-cleaning"}
	require.NoError(t, h.db.Create(&category).Error)

	profile, err := h.providers.CreateProfile(ctx, user.PublicID, &dto.CreateProfileRequest{
		DisplayName:     "Tidy Cleaning Co",
		Bio:             "Weekly and deep cleans",
		HourlyRateCents: 4500,
		CategoryIDs:     []string{category.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tidy Cleaning Co", profile.DisplayName)

	progress, err := h.onboarding.Progress(ctx, user.PublicID)
	require.NoError(t, err)
	assert.Equal(t, "complete", progress.Steps[0].Status)
	assert.Equal(t, "current", progress.Steps[1].Status)

	// 开户走的是支付方邮箱校验，给用户补上邮箱
	user.Email = "owner@tidycleaning.com"
	require.NoError(t, h.users.Save(ctx, user))

	setup, err := h.payments.CreateConnectAccount(ctx, user.PublicID, &dto.CreateAccountRequest{
		BusinessType: "company",
		BusinessName: "Tidy Cleaning Co",
	})
	require.NoError(t, err)
	assert.Equal(t, "setup", setup.View)
	assert.NotEmpty(t, setup.OnboardingURL)

	fee, err := h.payments.ConfirmOnboardingFee(ctx, user.PublicID)
	require.NoError(t, err)
	assert.True(t, fee.FeePaid)
	assert.Equal(t, config.Cfg.OnboardingFeeCents, fee.AmountCents)

	progress, err = h.onboarding.Progress(ctx, user.PublicID)
	require.NoError(t, err)
	assert.True(t, progress.Complete)

	// 链走完用户转 active
	refreshed, err := h.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusActive, refreshed.Status)
}

func (h *flowHarness) lookupUser(t *testing.T, phone string) *model.User {
	t.Helper()
	e164, err := utils.NormalizePhone(phone)
	require.NoError(t, err)
	user, err := h.users.GetByPhoneHash(context.Background(), utils.HashPhone(e164))
	require.NoError(t, err)
	return user
}
