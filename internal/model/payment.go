package model

// PaymentKind 交易类型
type PaymentKind string

const (
	PaymentKindOnboardingFee PaymentKind = "onboarding_fee"
	PaymentKindBooking       PaymentKind = "booking"
)

// PaymentStatus 交易状态
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentTransaction 记录一笔对外支付，ExternalRef 为支付网关侧的对象 ID
type PaymentTransaction struct {
	BaseModel
	UserID      int64         `gorm:"index;not null" json:"user_id"`
	Kind        PaymentKind   `gorm:"type:varchar(32);not null" json:"kind"`
	AmountCents int64         `gorm:"not null;check:amount_cents > 0" json:"amount_cents"`
	Currency    string        `gorm:"type:varchar(8);not null;default:usd" json:"currency"`
	Status      PaymentStatus `gorm:"type:varchar(16);not null;default:pending" json:"status"`
	ExternalRef string        `gorm:"type:varchar(128)" json:"external_ref"`
}

// TableName 指定表名
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
