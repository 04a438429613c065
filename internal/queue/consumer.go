package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"TidyElephant/internal/cache"
	"TidyElephant/internal/model"
	"TidyElephant/internal/repository"
	"TidyElephant/pkg/calendar"
	"TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
	"TidyElephant/pkg/metrics"
	"TidyElephant/storage/database"
	"TidyElephant/storage/mq"
	"TidyElephant/utils"
)

// StartProvisionConsumer 启动日历开通消费者。
// 任务分三步：建托管账号 → 建周排期 → 回写 token 密文和 ID。
// 第一步之后的步骤默认前序副作用已发生，部分失败靠调度器重扫兜底。
func StartProvisionConsumer(ctx context.Context) error {
	providers := repository.NewProviderRepo(database.DB())
	client := calendar.GetClient()

	return mq.Consume(mq.ConsumeOptions{
		Queue:         mq.ProvisionQueue,
		ConsumerTag:   "calendar_provision_consumer",
		PrefetchCount: 5,
		Handler: func(body []byte) error {
			return handleProvisionMessage(ctx, providers, client, body)
		},
	})
}

func handleProvisionMessage(ctx context.Context, providers *repository.ProviderRepo, client calendar.Client, body []byte) error {
	var msg model.CalendarProvisionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to unmarshal calendar provision message: %w", err)
	}

	fresh, err := cache.MarkMessageProcessed(ctx, msg.MessageID)
	if err != nil {
		logger.Logger.Warn("Failed to check message processed status",
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		// 检查失败不阻塞业务，最坏情况重复处理一次
	} else if !fresh {
		return &errors.SkipMessageError{
			Reason: fmt.Sprintf("message %s already processed", msg.MessageID),
		}
	}

	if err := provision(ctx, providers, client, msg); err != nil {
		logger.Logger.Error("Calendar provisioning failed",
			zap.Int64("user_id", msg.UserID),
			zap.String("message_id", msg.MessageID),
			zap.Error(err),
		)
		cache.UnmarkMessage(ctx, msg.MessageID)
		providers.UpdateProvisionStatus(ctx, msg.UserID, model.ProvisionStatusFailed)
		// 失败不重投：状态已落库，重试由补偿扫描按间隔触发，
		// 直接 Nack 重投会在供应商持续故障时打转
		return &errors.SkipMessageError{
			Reason: fmt.Sprintf("provisioning for user %d failed, left to resweep", msg.UserID),
		}
	}
	return nil
}

// StartAllConsumers 启动所有消费者（worker 启动时调用）
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name     string
		consumer func(context.Context) error
	}{
		{"calendar_provision", StartProvisionConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, consumer func(context.Context) error) {
			defer wg.Done()

			logger.Logger.Info("Starting consumer",
				zap.String("consumer_name", name),
			)

			if err := consumer(ctx); err != nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer_name", name),
					zap.Error(err),
				)
			}
		}(c.name, c.consumer)
	}

	wg.Wait()
}

func provision(ctx context.Context, providers *repository.ProviderRepo, client calendar.Client, msg model.CalendarProvisionMessage) error {
	start := time.Now()

	profile, err := providers.GetByUserID(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("failed to load profile for user %d: %w", msg.UserID, err)
	}
	if profile.ProvisionStatus == model.ProvisionStatusComplete {
		return nil
	}

	// 步骤 1：建托管账号。失败重投时已建好的账号按状态去重，不再重建。
	accessToken := ""
	if profile.CalManagedUserID == 0 {
		user, err := client.CreateManagedUser(ctx, msg.Email, msg.Name, msg.TimeZone)
		if err != nil {
			metrics.GetMetrics().RecordProvision(ctx, "user_failed", time.Since(start).Seconds())
			return fmt.Errorf("failed to create managed user: %w", err)
		}

		accessCipher, err := utils.EncryptSecret(user.AccessToken)
		if err != nil {
			return fmt.Errorf("failed to encrypt access token: %w", err)
		}
		refreshCipher, err := utils.EncryptSecret(user.RefreshToken)
		if err != nil {
			return fmt.Errorf("failed to encrypt refresh token: %w", err)
		}

		if err := providers.UpdateFields(ctx, msg.UserID, map[string]interface{}{
			"cal_managed_user_id": user.ID,
			"cal_access_cipher":   accessCipher,
			"cal_refresh_cipher":  refreshCipher,
		}); err != nil {
			return fmt.Errorf("failed to persist managed user: %w", err)
		}
		accessToken = user.AccessToken
	} else {
		accessToken, err = utils.DecryptSecret(profile.CalAccessCipher)
		if err != nil {
			return fmt.Errorf("failed to decrypt access token: %w", err)
		}
	}

	// 步骤 2：建周排期，不可用的天已在映射时丢弃
	slots := make([]calendar.WeekdayInput, 0, len(msg.Weekly))
	for _, day := range msg.Weekly {
		slots = append(slots, calendar.WeekdayInput{
			Day:       day.Day,
			Available: day.Available,
			StartTime: day.StartTime,
			EndTime:   day.EndTime,
		})
	}
	scheduleID, err := client.CreateSchedule(ctx, accessToken, "Working Hours", msg.TimeZone, calendar.BuildSlots(slots))
	if err != nil {
		metrics.GetMetrics().RecordProvision(ctx, "schedule_failed", time.Since(start).Seconds())
		return fmt.Errorf("failed to create schedule: %w", err)
	}

	// 步骤 3：终态落库
	if err := providers.UpdateFields(ctx, msg.UserID, map[string]interface{}{
		"cal_schedule_id":  scheduleID,
		"provision_status": model.ProvisionStatusComplete,
	}); err != nil {
		return fmt.Errorf("failed to persist schedule: %w", err)
	}

	metrics.GetMetrics().RecordProvision(ctx, "ok", time.Since(start).Seconds())
	logger.Logger.Info("calendar provisioning completed",
		zap.Int64("user_id", msg.UserID),
		zap.Int64("schedule_id", scheduleID),
	)
	return nil
}
