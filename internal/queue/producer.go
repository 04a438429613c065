package queue

import (
	"fmt"

	"go.uber.org/zap"

	"TidyElephant/internal/model"
	"TidyElephant/pkg/logger"
	"TidyElephant/pkg/snowflake"
	"TidyElephant/storage/mq"
)

// PublishCalendarProvision 发布日历开通任务
func PublishCalendarProvision(msg model.CalendarProvisionMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("user_id", msg.UserID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("cal_provision_%d", id)
	}

	err := mq.PublishMessage(
		mq.ProvisionExchange,
		mq.ProvisionRoutingKey,
		msg,
	)
	if err != nil {
		logger.Logger.Error("Failed to publish calendar provision message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("user_id", msg.UserID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published calendar provision message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("user_id", msg.UserID),
	)

	return nil
}
