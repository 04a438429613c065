package model

// ProvisionStatus 日历开通任务状态
type ProvisionStatus string

const (
	ProvisionStatusNone      ProvisionStatus = "none"      // 未请求
	ProvisionStatusPending   ProvisionStatus = "pending"   // 已入队等待 worker
	ProvisionStatusComplete  ProvisionStatus = "complete"  // token 已回写
	ProvisionStatusFailed    ProvisionStatus = "failed"    // worker 重试耗尽
)

// ProviderProfile 服务商档案
type ProviderProfile struct {
	BaseModel
	UserID          int64  `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName     string `gorm:"type:varchar(128);not null" json:"display_name"`
	Bio             string `gorm:"type:text" json:"bio"`
	HourlyRateCents int64  `gorm:"not null;check:hourly_rate_cents > 0" json:"hourly_rate_cents"`
	EIN             string `gorm:"type:varchar(10);not null" json:"ein"`
	BackgroundCheck bool   `gorm:"not null;default:false" json:"background_check_consent"`

	// Stripe Connect
	StripeAccountID string `gorm:"type:varchar(64);index" json:"-"`
	FeePaid         bool   `gorm:"not null;default:false" json:"fee_paid"`

	// Cal.com 托管用户，token 加密落库
	CalManagedUserID   int64           `json:"-"`
	CalScheduleID      int64           `json:"-"`
	CalAccessCipher    string          `gorm:"type:text" json:"-"`
	CalRefreshCipher   string          `gorm:"type:text" json:"-"`
	ProvisionStatus    ProvisionStatus `gorm:"type:varchar(16);not null;default:'none';index" json:"provision_status"`
	// 提交时的快照，补偿扫描重建消息只认这三列，不回头读用户当前资料
	WeeklyHoursJSON string `gorm:"type:text" json:"-"`
	CalTimeZone     string `gorm:"type:varchar(64)" json:"-"`
	CalEmail        string `gorm:"type:varchar(255)" json:"-"`

	Categories []Category `gorm:"many2many:provider_categories" json:"categories"`
}

// TableName 指定表名
func (ProviderProfile) TableName() string {
	return "provider_profiles"
}
