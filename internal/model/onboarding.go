package model

import "time"

// StepStatus 引导步骤状态
type StepStatus string

const (
	StepStatusUpcoming StepStatus = "upcoming"
	StepStatusCurrent  StepStatus = "current"
	StepStatusComplete StepStatus = "complete"
)

// 服务商入驻的三个固定步骤，顺序即 SortOrder
const (
	StepBuildProfile  = "Build Profile"
	StepTrustSafety   = "Trust & Safety"
	StepOnboardingFee = "Onboarding Fee"
)

// StepSequence 按顺序列出全部步骤，初始化与推进都以它为准
var StepSequence = []string{
	StepBuildProfile,
	StepTrustSafety,
	StepOnboardingFee,
}

// StepDescriptions 各步骤的说明文案，初始化时写进步骤行
var StepDescriptions = map[string]string{
	StepBuildProfile:  "Tell clients who you are, what you do, and where you work",
	StepTrustSafety:   "Verify your identity and connect a payout account",
	StepOnboardingFee: "Pay the one-time onboarding fee to go live",
}

// OnboardingStep 每个用户一行一步，同一用户同一时刻至多一个 current
type OnboardingStep struct {
	BaseModel
	UserID      int64      `gorm:"not null;uniqueIndex:idx_onboarding_user_name;uniqueIndex:idx_onboarding_user_order" json:"user_id"`
	Name        string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_onboarding_user_name" json:"name"`
	Description string     `gorm:"type:varchar(255);not null;default:''" json:"description"`
	SortOrder   int        `gorm:"not null;uniqueIndex:idx_onboarding_user_order" json:"sort_order"`
	Status      StepStatus `gorm:"type:varchar(16);not null;default:upcoming" json:"status"`
	CompletedAt *time.Time `json:"completed_at"`
}

// TableName 指定表名
func (OnboardingStep) TableName() string {
	return "onboarding_steps"
}
