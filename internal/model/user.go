package model

// UserRole 用户角色枚举，双边市场里同一账户可以同时是客户和服务商
type UserRole string

const (
	UserRoleClient   UserRole = "client"
	UserRoleProvider UserRole = "provider"
	UserRoleBoth     UserRole = "both"
)

// UserStatus 用户状态枚举
type UserStatus string

const (
	UserStatusPending    UserStatus = "pending"    // 已创建，手机号未验证
	UserStatusOnboarding UserStatus = "onboarding" // 服务商引导流程进行中
	UserStatusActive     UserStatus = "active"     // 正常使用
)

// StatusToStringMap 状态对外展示值
var StatusToStringMap = map[UserStatus]string{
	UserStatusPending:    "pending",
	UserStatusOnboarding: "onboarding",
	UserStatusActive:     "active",
}

// User 用户模型

type User struct {
	BaseModel
	PublicID    int64      `gorm:"uniqueIndex;not null" json:"public_id"`
	Email       string     `gorm:"type:varchar(255);index" json:"email"`
	FirstName   string     `gorm:"type:varchar(64);not null;default:''" json:"first_name"`
	LastName    string     `gorm:"type:varchar(64);not null;default:''" json:"last_name"`
	Role        UserRole   `gorm:"type:varchar(16);not null;default:'client'" json:"role"`
	PhoneCipher string     `gorm:"type:text" json:"-"`                 // 手机号密文，不对外暴露
	PhoneHash   *string    `gorm:"uniqueIndex;type:char(64)" json:"-"` // 手机号哈希，用于查询
	Status      UserStatus `gorm:"type:varchar(16);not null;default:'pending';index:idx_users_status" json:"status"`
	Timezone    string     `gorm:"type:varchar(64);not null;default:'America/New_York'" json:"timezone"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// PhoneVerified 手机号是否已通过验证
func (u *User) PhoneVerified() bool {
	return u.PhoneHash != nil && *u.PhoneHash != ""
}
