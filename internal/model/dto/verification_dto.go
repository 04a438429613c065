package dto

// ========== 手机验证相关 DTO ==========

// SendCodeRequest 发送验证码请求
type SendCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// SendCodeResponse 发送验证码响应
type SendCodeResponse struct {
	// State 当前会话状态
	State string `json:"state"`
	// ResendAfterSeconds 下一次可重发的等待秒数
	ResendAfterSeconds int `json:"resend_after_seconds"`
	// AttemptsUsed 当日已用发送次数
	AttemptsUsed int `json:"attempts_used"`
	// MaxAttempts 当日发送上限
	MaxAttempts int `json:"max_attempts"`
}

// VerifyCodeRequest 校验验证码请求
type VerifyCodeRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// VerifyCodeResponse 校验验证码响应
type VerifyCodeResponse struct {
	State string `json:"state"`
	// PhoneMasked 展示用格式，如 (415) 555-0132
	PhoneMasked  string `json:"phone_masked,omitempty"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
}

// ResetVerificationRequest 换号重填时重置会话
type ResetVerificationRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// RefreshTokenRequest 刷新 token 请求
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshTokenResponse 刷新 token 响应
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
