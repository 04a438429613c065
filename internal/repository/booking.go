package repository

import (
	"context"

	"TidyElephant/internal/model"

	"gorm.io/gorm"
)

// BookingRepo 预约与评价表访问
type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Create(ctx context.Context, booking *model.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	var booking model.Booking
	if err := r.db.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListForUser 同时覆盖客户侧和服务商侧
func (r *BookingRepo) ListForUser(ctx context.Context, userID int64) ([]model.Booking, error) {
	var bookings []model.Booking
	err := r.db.WithContext(ctx).
		Where("client_id = ? OR provider_id = ?", userID, userID).
		Order("starts_at DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id int64, status model.BookingStatus) error {
	return r.db.WithContext(ctx).Model(&model.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepo) CreateReview(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *BookingRepo) GetReviewByBookingID(ctx context.Context, bookingID int64) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, "booking_id = ?", bookingID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}
