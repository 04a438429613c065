package payments

import (
	"context"
	"fmt"

	"TidyElephant/pkg/logger"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/account"
	"github.com/stripe/stripe-go/v79/accountlink"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"go.uber.org/zap"
)

// StripeClient 基于 Stripe Connect 的支付客户端
type StripeClient struct {
	returnURL  string
	refreshURL string
}

func NewStripeClient(secretKey, returnURL, refreshURL string) *StripeClient {
	stripe.Key = secretKey
	return &StripeClient{
		returnURL:  returnURL,
		refreshURL: refreshURL,
	}
}

// CreateConnectAccount 先过白名单校验再转给 Stripe，国家写死 US
func (c *StripeClient) CreateConnectAccount(ctx context.Context, seed AccountSeed) (string, error) {
	if err := ValidateSeed(seed); err != nil {
		return "", err
	}

	params := &stripe.AccountParams{
		Params:       stripe.Params{Context: ctx},
		Type:         stripe.String(string(stripe.AccountTypeExpress)),
		Country:      stripe.String("US"),
		Email:        stripe.String(seed.Email),
		BusinessType: stripe.String(seed.BusinessType),
		Capabilities: &stripe.AccountCapabilitiesParams{
			CardPayments: &stripe.AccountCapabilitiesCardPaymentsParams{
				Requested: stripe.Bool(true),
			},
			Transfers: &stripe.AccountCapabilitiesTransfersParams{
				Requested: stripe.Bool(true),
			},
		},
	}
	if seed.BusinessName != "" || seed.ProductDesc != "" {
		params.BusinessProfile = &stripe.AccountBusinessProfileParams{}
		if seed.BusinessName != "" {
			params.BusinessProfile.Name = stripe.String(seed.BusinessName)
		}
		if seed.ProductDesc != "" {
			params.BusinessProfile.ProductDescription = stripe.String(seed.ProductDesc)
		}
	}

	acct, err := account.New(params)
	if err != nil {
		logger.Logger.Error("failed to create connect account", zap.Error(err))
		return "", fmt.Errorf("failed to create connect account: %w", err)
	}

	logger.Logger.Info("connect account created", zap.String("account_id", acct.ID))
	return acct.ID, nil
}

// CreateOnboardingLink 生成 account_onboarding 链接，可多次重新生成
func (c *StripeClient) CreateOnboardingLink(ctx context.Context, accountID string) (string, error) {
	params := &stripe.AccountLinkParams{
		Params:     stripe.Params{Context: ctx},
		Account:    stripe.String(accountID),
		ReturnURL:  stripe.String(c.returnURL),
		RefreshURL: stripe.String(c.refreshURL),
		Type:       stripe.String("account_onboarding"),
	}

	link, err := accountlink.New(params)
	if err != nil {
		logger.Logger.Error("failed to create onboarding link",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to create onboarding link: %w", err)
	}

	return link.URL, nil
}

// GetAccountStatus 实时拉账户，待补材料以 currently_due + past_due 为准
func (c *StripeClient) GetAccountStatus(ctx context.Context, accountID string) (*AccountStatus, error) {
	params := &stripe.AccountParams{
		Params: stripe.Params{Context: ctx},
	}

	acct, err := account.GetByID(accountID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	status := &AccountStatus{
		AccountID:      acct.ID,
		ChargesEnabled: acct.ChargesEnabled,
		PayoutsEnabled: acct.PayoutsEnabled,
	}
	if acct.Requirements != nil {
		status.OutstandingRequirements = len(acct.Requirements.CurrentlyDue) > 0 ||
			len(acct.Requirements.PastDue) > 0
	}
	return status, nil
}

// ChargeOnboardingFee 用 PaymentIntent 收入驻费
func (c *StripeClient) ChargeOnboardingFee(ctx context.Context, accountID string, amountCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		Metadata: map[string]string{
			"purpose":    "onboarding_fee",
			"account_id": accountID,
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		logger.Logger.Error("failed to create onboarding fee intent",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to create onboarding fee intent: %w", err)
	}

	return pi.ID, nil
}
