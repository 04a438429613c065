package schedule

// 开通重扫调度器：定期找出卡在 pending/failed 的日历开通档案重新入队。
// 部分失败没有补偿逻辑，靠这里的重扫拉回终态。

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"TidyElephant/config"
	"TidyElephant/internal/cache"
	"TidyElephant/internal/model"
	"TidyElephant/internal/queue"
	"TidyElephant/internal/repository"
	"TidyElephant/pkg/logger"
	"TidyElephant/storage/database"
)

const resweepLockKey = "provision:resweep"

var (
	provisionSchedulerOnce sync.Once
	provisionSchedulerInst *ProvisioningScheduler
)

// ProvisioningScheduler 开通重扫调度器
type ProvisioningScheduler struct {
	logger     *zap.Logger
	providers  *repository.ProviderRepo
	jobRunning bool
	jobMu      sync.Mutex
}

// GetProvisioningScheduler 获取调度器单例
func GetProvisioningScheduler() *ProvisioningScheduler {
	provisionSchedulerOnce.Do(func() {
		db := database.DB()
		provisionSchedulerInst = &ProvisioningScheduler{
			logger:    logger.Logger,
			providers: repository.NewProviderRepo(db),
		}
	})
	return provisionSchedulerInst
}

// ResweepStuckProvisioning 重扫卡住的开通档案并重新入队。
// Redis 锁保证多实例部署时同一轮只有一个调度器在扫。
func (s *ProvisioningScheduler) ResweepStuckProvisioning(ctx context.Context) error {
	s.jobMu.Lock()
	if s.jobRunning {
		s.jobMu.Unlock()
		s.logger.Info("Provisioning resweep already running, skipping")
		return nil
	}
	s.jobRunning = true
	s.jobMu.Unlock()

	defer func() {
		s.jobMu.Lock()
		s.jobRunning = false
		s.jobMu.Unlock()
	}()

	interval := time.Duration(config.Cfg.ProvisionRetryMinutes) * time.Minute
	locked, err := cache.TryLock(ctx, resweepLockKey, interval)
	if err != nil {
		return fmt.Errorf("failed to acquire resweep lock: %w", err)
	}
	if !locked {
		s.logger.Info("Another instance holds the resweep lock, skipping")
		return nil
	}
	defer cache.Unlock(ctx, resweepLockKey)

	threshold := time.Now().Add(-time.Duration(config.Cfg.ProvisionStuckMinutes) * time.Minute)
	profiles, err := s.providers.ListStuckProvisioning(ctx, threshold)
	if err != nil {
		return fmt.Errorf("failed to list stuck provisioning profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil
	}

	s.logger.Info("Resweeping stuck calendar provisioning",
		zap.Int("count", len(profiles)),
		zap.Time("threshold", threshold),
	)

	requeued := 0
	for i := range profiles {
		if err := s.requeue(ctx, &profiles[i]); err != nil {
			s.logger.Error("Failed to requeue provisioning",
				zap.Int64("user_id", profiles[i].UserID),
				zap.Error(err),
			)
			continue
		}
		requeued++
	}

	s.logger.Info("Provisioning resweep finished",
		zap.Int("requeued", requeued),
		zap.Int("total", len(profiles)),
	)
	return nil
}

func (s *ProvisioningScheduler) requeue(ctx context.Context, profile *model.ProviderProfile) error {
	msg, err := rebuildProvisionMessage(profile)
	if err != nil {
		// 快照不完整的档案重扫也救不回来，标成 failed 等人工介入
		s.logger.Warn("Provisioning snapshot unusable, marking failed",
			zap.Int64("user_id", profile.UserID),
			zap.Error(err),
		)
		return s.providers.UpdateProvisionStatus(ctx, profile.UserID, model.ProvisionStatusFailed)
	}

	if err := queue.PublishCalendarProvision(msg); err != nil {
		return err
	}

	return s.providers.UpdateProvisionStatus(ctx, profile.UserID, model.ProvisionStatusPending)
}

// rebuildProvisionMessage 从提交时落在档案上的快照重建开通消息。
// 不回头读用户当前资料，保证重扫投出的消息和首次提交的一致。
func rebuildProvisionMessage(profile *model.ProviderProfile) (model.CalendarProvisionMessage, error) {
	var weekly []model.DayAvailability
	if profile.WeeklyHoursJSON != "" {
		if err := json.Unmarshal([]byte(profile.WeeklyHoursJSON), &weekly); err != nil {
			return model.CalendarProvisionMessage{}, fmt.Errorf("failed to decode weekly hours: %w", err)
		}
	}
	if len(weekly) == 0 {
		return model.CalendarProvisionMessage{}, fmt.Errorf("no weekly hours recorded for user %d", profile.UserID)
	}
	if profile.CalTimeZone == "" || profile.CalEmail == "" {
		return model.CalendarProvisionMessage{}, fmt.Errorf("missing timezone or email snapshot for user %d", profile.UserID)
	}

	return model.CalendarProvisionMessage{
		UserID:   profile.UserID,
		Email:    profile.CalEmail,
		Name:     profile.DisplayName,
		TimeZone: profile.CalTimeZone,
		Weekly:   weekly,
	}, nil
}

// Run 按固定间隔跑重扫，直到 ctx 取消
func (s *ProvisioningScheduler) Run(ctx context.Context) {
	interval := time.Duration(config.Cfg.ProvisionRetryMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Provisioning scheduler started",
		zap.Duration("interval", interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Provisioning scheduler stopped")
			return
		case <-ticker.C:
			if err := s.ResweepStuckProvisioning(ctx); err != nil {
				s.logger.Error("Provisioning resweep failed", zap.Error(err))
			}
		}
	}
}
