package cache

import (
	"context"
	"time"

	"TidyElephant/storage/redis"
)

// 消费端幂等标记：同一条消息重投时直接跳过
const (
	idemPrefix = "idem"

	idemTTL = 24 * time.Hour
)

// MarkMessageProcessed 首次处理返回 true，重复消息返回 false
func MarkMessageProcessed(ctx context.Context, messageID string) (bool, error) {
	key := redis.Key(idemPrefix, messageID)
	return redis.Client().SetNX(ctx, key, 1, idemTTL).Result()
}

// UnmarkMessage 处理失败时撤掉标记，让重投能够再次执行
func UnmarkMessage(ctx context.Context, messageID string) error {
	key := redis.Key(idemPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}
