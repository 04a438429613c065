package dto

import "time"

// ========== 预约相关 DTO ==========

// CreateBookingRequest 下单请求
type CreateBookingRequest struct {
	ProviderID int64     `json:"provider_id" binding:"required"`
	StartsAt   time.Time `json:"starts_at" binding:"required"`
	PriceCents int64     `json:"price_cents" binding:"required"`
	Notes      string    `json:"notes"`
}

// BookingData 预约
type BookingData struct {
	ID         int64     `json:"id"`
	ClientID   int64     `json:"client_id"`
	ProviderID int64     `json:"provider_id"`
	StartsAt   time.Time `json:"starts_at"`
	Status     string    `json:"status"`
	PriceCents int64     `json:"price_cents"`
	Notes      string    `json:"notes,omitempty"`
}

// CreateReviewRequest 提交评价
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// ReviewData 评价
type ReviewData struct {
	BookingID int64  `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}
