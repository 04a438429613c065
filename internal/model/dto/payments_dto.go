package dto

// ========== 支付相关 DTO ==========

// CreateAccountRequest 开 connected account 请求
type CreateAccountRequest struct {
	BusinessType string `json:"business_type" binding:"required"`
	BusinessName string `json:"business_name"`
	ProductDesc  string `json:"product_description"`
}

// AccountSetupResponse 开户响应，三种互斥视图之一
type AccountSetupResponse struct {
	// View 取值 setup / resume / complete
	View          string `json:"view"`
	AccountID     string `json:"account_id,omitempty"`
	OnboardingURL string `json:"onboarding_url,omitempty"`
}

// AccountStatusResponse 账户状态，每次实时拉取
type AccountStatusResponse struct {
	View                    string `json:"view"`
	AccountID               string `json:"account_id,omitempty"`
	ChargesEnabled          bool   `json:"charges_enabled"`
	PayoutsEnabled          bool   `json:"payouts_enabled"`
	OutstandingRequirements bool   `json:"outstanding_requirements"`
}

// ConfirmFeeResponse 入驻费确认响应
type ConfirmFeeResponse struct {
	PaymentRef  string `json:"payment_ref"`
	AmountCents int64  `json:"amount_cents"`
	FeePaid     bool   `json:"fee_paid"`
}
