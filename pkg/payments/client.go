package payments

import (
	"context"
	"fmt"
	"sync"

	"TidyElephant/config"
	"TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
)

// AccountSeed 开户用的字段白名单，白名单之外的数据一律不透传给支付方
type AccountSeed struct {
	Email        string `json:"email"`
	BusinessType string `json:"business_type"`
	BusinessName string `json:"business_name"`
	ProductDesc  string `json:"product_description"`
}

// 允许的 business_type 取值
var allowedBusinessTypes = map[string]bool{
	"company":    true,
	"individual": true,
}

// ValidateSeed 校验开户字段，国家固定 US，类型只收 company/individual
func ValidateSeed(seed AccountSeed) error {
	if seed.Email == "" {
		return errors.InvalidAccountInfo
	}
	if !allowedBusinessTypes[seed.BusinessType] {
		return errors.InvalidAccountInfo
	}
	return nil
}

// AccountStatus 支付方侧的账户状态，永远实时拉取不做长缓存
type AccountStatus struct {
	AccountID      string
	ChargesEnabled bool
	PayoutsEnabled bool
	// OutstandingRequirements 还有待补材料，需要重新生成引导链接
	OutstandingRequirements bool
}

// Client 支付方客户端接口
type Client interface {
	// CreateConnectAccount 在支付方侧开 connected account，返回账户 ID
	CreateConnectAccount(ctx context.Context, seed AccountSeed) (string, error)

	// CreateOnboardingLink 生成一次性引导链接，过期可重新生成
	CreateOnboardingLink(ctx context.Context, accountID string) (string, error)

	// GetAccountStatus 实时拉取账户状态
	GetAccountStatus(ctx context.Context, accountID string) (*AccountStatus, error)

	// ChargeOnboardingFee 收取入驻费，返回支付方侧的对象 ID
	ChargeOnboardingFee(ctx context.Context, accountID string, amountCents int64) (string, error)
}

var (
	payClient Client
	payOnce   sync.Once
	payErr    error
)

// Init 初始化支付客户端
func Init() error {
	payOnce.Do(func() {
		cfg := config.Cfg

		if cfg.StripeSecretKey == "" {
			payErr = fmt.Errorf("stripe secret key is not configured")
			return
		}

		payClient = NewStripeClient(cfg.StripeSecretKey, cfg.StripeOnboardingReturn, cfg.StripeOnboardingRetry)

		logger.Logger.Info("payments client initialized")
	})

	return payErr
}

func GetClient() Client {
	if payClient == nil {
		panic("payments client not initialized, call payments.Init() first")
	}
	return payClient
}

// SetClient 测试用注入点
func SetClient(c Client) {
	payClient = c
}
