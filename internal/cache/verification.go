package cache

import (
	"context"
	"time"

	"TidyElephant/config"
	"TidyElephant/storage/redis"

	ri "github.com/redis/go-redis/v9"
)

/*
手机验证的全部瞬态状态都放 Redis，按 phoneHash 维度隔离：

  会话状态：tidy:verify:state:{phoneHash}        TTL = VERIFY_SESSION_TTL_HOURS
  重发计数：tidy:verify:attempts:{phoneHash}     当日午夜过期
  重发冷却：tidy:verify:cooldown:{phoneHash}     TTL = 本次冷却时长
  失败码缓存：tidy:verify:rejected:{phoneHash}:{code}  TTL = VERIFY_CODE_TTL_SECONDS

失败码缓存只存否定结果：同一个错码重试时直接短路，不再打供应商。
否定结果随验证码同寿命：码过期后同一串数字可能是新码，缓存必须跟着失效。
验证通过的结果落库，不走缓存。
*/

const verifyPrefix = "verify"

func sessionTTL() time.Duration {
	return time.Duration(config.Cfg.VerifySessionTTLHours) * time.Hour
}

func rejectedTTL() time.Duration {
	return time.Duration(config.Cfg.VerifyCodeTTLSeconds) * time.Second
}

// VerifyState 验证会话所处状态
type VerifyState string

const (
	VerifyStateIdle        VerifyState = "idle"
	VerifyStateSendingCode VerifyState = "sending-code"
	VerifyStateCodeSent    VerifyState = "code-sent"
	VerifyStateChecking    VerifyState = "verifying-code"
	VerifyStateCodeInvalid VerifyState = "code-invalid"
	VerifyStateVerified    VerifyState = "code-verified"
)

// SetVerificationState 写入会话状态
func SetVerificationState(ctx context.Context, phoneHash string, state VerifyState) error {
	key := redis.Key(verifyPrefix, "state", phoneHash)
	return redis.Client().Set(ctx, key, string(state), sessionTTL()).Err()
}

// GetVerificationState 读取会话状态，无记录时返回 idle
func GetVerificationState(ctx context.Context, phoneHash string) (VerifyState, error) {
	key := redis.Key(verifyPrefix, "state", phoneHash)
	val, err := redis.Client().Get(ctx, key).Result()
	if err == ri.Nil {
		return VerifyStateIdle, nil
	}
	if err != nil {
		return VerifyStateIdle, err
	}
	return VerifyState(val), nil
}

// ClearVerificationState 会话终结时清掉状态
func ClearVerificationState(ctx context.Context, phoneHash string) error {
	key := redis.Key(verifyPrefix, "state", phoneHash)
	return redis.Client().Del(ctx, key).Err()
}

// IncrSendAttempts 自增发送计数并返回当前值，首次写入时设定次日过期
func IncrSendAttempts(ctx context.Context, phoneHash string) (int, error) {
	key := redis.Key(verifyPrefix, "attempts", phoneHash)

	count, err := redis.Client().Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if count == 1 {
		now := time.Now()
		tomorrow := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
		redis.Client().Expire(ctx, key, tomorrow.Sub(now))
	}

	return int(count), nil
}

// GetSendAttempts 读取当日发送计数
func GetSendAttempts(ctx context.Context, phoneHash string) (int, error) {
	key := redis.Key(verifyPrefix, "attempts", phoneHash)

	count, err := redis.Client().Get(ctx, key).Int()
	if err == ri.Nil {
		return 0, nil
	}
	return count, err
}

// SetResendCooldown 设置冷却窗口，TTL 即剩余等待时长
func SetResendCooldown(ctx context.Context, phoneHash string, delay time.Duration) error {
	key := redis.Key(verifyPrefix, "cooldown", phoneHash)
	return redis.Client().Set(ctx, key, 1, delay).Err()
}

// ResendCooldownRemaining 剩余冷却时间，0 表示可以重发
func ResendCooldownRemaining(ctx context.Context, phoneHash string) (time.Duration, error) {
	key := redis.Key(verifyPrefix, "cooldown", phoneHash)

	ttl, err := redis.Client().TTL(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// MarkCodeRejected 记录一个被供应商判错的码
func MarkCodeRejected(ctx context.Context, phoneHash, code string) error {
	key := redis.Key(verifyPrefix, "rejected", phoneHash, code)
	return redis.Client().Set(ctx, key, 1, rejectedTTL()).Err()
}

// IsCodeRejected 该码是否已判错过，命中则无需再打供应商
func IsCodeRejected(ctx context.Context, phoneHash, code string) (bool, error) {
	key := redis.Key(verifyPrefix, "rejected", phoneHash, code)

	_, err := redis.Client().Get(ctx, key).Result()
	if err == ri.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ClearRejectedCodes 验证通过后清掉该号码的全部失败码
func ClearRejectedCodes(ctx context.Context, phoneHash string) error {
	pattern := redis.Key(verifyPrefix, "rejected", phoneHash, "*")

	iter := redis.Client().Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := redis.Client().Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
