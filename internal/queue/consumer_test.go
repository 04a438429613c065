package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"TidyElephant/config"
	"TidyElephant/internal/model"
	"TidyElephant/internal/repository"
	"TidyElephant/pkg/calendar"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
	redisstore "TidyElephant/storage/redis"
)

func setupConsumerHarness(t *testing.T) *repository.ProviderRepo {
	t.Helper()

	config.Cfg.EncryptionKey = "0123456789abcdef0123456789abcdef"
	logger.Logger = zap.NewNop()

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })
	redisstore.SetClient(redisClient)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ProviderProfile{}, &model.Category{}, &model.User{}))

	return repository.NewProviderRepo(db)
}

func provisionBody(t *testing.T, msg model.CalendarProvisionMessage) []byte {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return body
}

func TestHandleProvisionMessageSuccess(t *testing.T) {
	ctx := context.Background()
	providers := setupConsumerHarness(t)
	client := calendar.NewMockClient()

	require.NoError(t, providers.Create(ctx, &model.ProviderProfile{
		UserID:          7,
		DisplayName:     "Tidy Cleaning Co",
		HourlyRateCents: 4500,
		ProvisionStatus: model.ProvisionStatusPending,
	}))

	body := provisionBody(t, model.CalendarProvisionMessage{
		MessageID: "msg-ok",
		UserID:    7,
		Email:     "owner@tidycleaning.com",
		Name:      "Tidy Cleaning Co",
		TimeZone:  "America/New_York",
		Weekly: []model.DayAvailability{
			{Day: "Monday", StartTime: "09:00", EndTime: "17:00", Available: true},
		},
	})
	require.NoError(t, handleProvisionMessage(ctx, providers, client, body))

	profile, err := providers.GetByUserID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, model.ProvisionStatusComplete, profile.ProvisionStatus)
	assert.NotZero(t, profile.CalManagedUserID)
	assert.NotZero(t, profile.CalScheduleID)
}

// 供应商故障时消息不能回到队列里打转：标记 failed、吞掉消息，重试交给补偿扫描
func TestHandleProvisionMessageFailureDoesNotRequeue(t *testing.T) {
	ctx := context.Background()
	providers := setupConsumerHarness(t)
	client := calendar.NewMockClient()
	client.FailUserCreate = true

	require.NoError(t, providers.Create(ctx, &model.ProviderProfile{
		UserID:          8,
		DisplayName:     "Tidy Cleaning Co",
		HourlyRateCents: 4500,
		ProvisionStatus: model.ProvisionStatusPending,
	}))

	body := provisionBody(t, model.CalendarProvisionMessage{
		MessageID: "msg-fail",
		UserID:    8,
		Email:     "owner@tidycleaning.com",
		Name:      "Tidy Cleaning Co",
		TimeZone:  "America/New_York",
		Weekly: []model.DayAvailability{
			{Day: "Monday", StartTime: "09:00", EndTime: "17:00", Available: true},
		},
	})

	err := handleProvisionMessage(ctx, providers, client, body)
	require.Error(t, err)

	var skip *pkgerrors.SkipMessageError
	assert.True(t, errors.As(err, &skip))

	profile, getErr := providers.GetByUserID(ctx, 8)
	require.NoError(t, getErr)
	assert.Equal(t, model.ProvisionStatusFailed, profile.ProvisionStatus)
}

func TestHandleProvisionMessageIdempotent(t *testing.T) {
	ctx := context.Background()
	providers := setupConsumerHarness(t)
	client := calendar.NewMockClient()

	require.NoError(t, providers.Create(ctx, &model.ProviderProfile{
		UserID:          9,
		DisplayName:     "Tidy Cleaning Co",
		HourlyRateCents: 4500,
		ProvisionStatus: model.ProvisionStatusPending,
	}))

	body := provisionBody(t, model.CalendarProvisionMessage{
		MessageID: "msg-dup",
		UserID:    9,
		Email:     "owner@tidycleaning.com",
		Name:      "Tidy Cleaning Co",
		TimeZone:  "America/New_York",
		Weekly: []model.DayAvailability{
			{Day: "Monday", StartTime: "09:00", EndTime: "17:00", Available: true},
		},
	})
	require.NoError(t, handleProvisionMessage(ctx, providers, client, body))

	// 同一条消息重复投递要被幂等标记拦下
	err := handleProvisionMessage(ctx, providers, client, body)
	var skip *pkgerrors.SkipMessageError
	assert.True(t, errors.As(err, &skip))
	assert.Len(t, client.Users, 1)
	assert.Len(t, client.Schedules, 1)
}
