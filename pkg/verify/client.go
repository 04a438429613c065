package verify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"TidyElephant/config"
	"TidyElephant/pkg/logger"

	"go.uber.org/zap"
)

// LineType 号码线路类型，来自运营商侧查询
type LineType string

const (
	LineTypeMobile      LineType = "mobile"
	LineTypeLandline    LineType = "landline"
	LineTypeVoip        LineType = "voip"
	LineTypeNonFixVoip  LineType = "nonFixedVoip"
	LineTypeUnknown     LineType = "unknown"
)

// 供应商侧错误的哨兵值，业务层负责映射成对外错误码
var (
	// ErrThrottled 供应商限流
	ErrThrottled = errors.New("verification provider throttled the request")
	// ErrSessionNotFound 验证会话不存在或已过期
	ErrSessionNotFound = errors.New("verification session not found")
	// ErrMaxCheckAttempts 供应商侧校验次数耗尽
	ErrMaxCheckAttempts = errors.New("verification check attempts exhausted")
)

// Client 手机验证客户端接口
type Client interface {
	// LookupLineType 查询号码线路类型
	LookupLineType(ctx context.Context, phoneE164 string) (LineType, error)

	// StartVerification 向号码下发验证码
	StartVerification(ctx context.Context, phoneE164 string) error

	// CheckCode 校验验证码，approved 返回 true
	CheckCode(ctx context.Context, phoneE164, code string) (bool, error)
}

var (
	verifyClient Client
	verifyOnce   sync.Once
	verifyErr    error
)

// Init 初始化验证客户端
func Init() error {
	verifyOnce.Do(func() {
		cfg := config.Cfg

		// 本地联调用 mock，不依赖供应商凭证
		if cfg.VerifyProvider == "mock" {
			verifyClient = NewMockClient()
			logger.Logger.Warn("verification client running in mock mode, codes are not delivered")
			return
		}

		if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" {
			verifyErr = fmt.Errorf("twilio credentials are not configured")
			return
		}

		verifyClient = NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioVerifyServiceSID)

		logger.Logger.Info("verification client initialized",
			zap.String("provider", cfg.VerifyProvider),
			zap.String("service_sid", cfg.TwilioVerifyServiceSID),
		)
	})

	return verifyErr
}

func GetClient() Client {
	if verifyClient == nil {
		panic("verification client not initialized, call verify.Init() first")
	}
	return verifyClient
}

// SetClient 测试用注入点
func SetClient(c Client) {
	verifyClient = c
}
