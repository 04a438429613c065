package model

import "time"

// BookingStatus 预约状态枚举
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Booking 预约记录
// (client, provider, starts_at) 唯一，同一时刻同一对不允许重复下单
type Booking struct {
	BaseModel
	ClientID   int64         `gorm:"not null;uniqueIndex:idx_bookings_tuple" json:"client_id"`
	ProviderID int64         `gorm:"not null;uniqueIndex:idx_bookings_tuple" json:"provider_id"`
	StartsAt   time.Time     `gorm:"not null;uniqueIndex:idx_bookings_tuple" json:"starts_at"`
	Status     BookingStatus `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	PriceCents int64         `gorm:"not null;check:price_cents > 0" json:"price_cents"`
	Notes      string        `gorm:"type:text" json:"notes"`
}

// TableName 指定表名
func (Booking) TableName() string {
	return "bookings"
}
