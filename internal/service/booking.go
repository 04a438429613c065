package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"TidyElephant/internal/model"
	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/repository"
	pkgerrors "TidyElephant/pkg/errors"
	"TidyElephant/pkg/logger"
)

// BookingService 预约与评价
type BookingService struct {
	users    *repository.UserRepo
	bookings *repository.BookingRepo
}

func NewBookingService(users *repository.UserRepo, bookings *repository.BookingRepo) *BookingService {
	return &BookingService{
		users:    users,
		bookings: bookings,
	}
}

// CreateBooking 下单，(client, provider, starts_at) 唯一性由数据库兜底
func (s *BookingService) CreateBooking(ctx context.Context, publicID int64, req *dto.CreateBookingRequest) (*dto.BookingData, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}
	if req.PriceCents <= 0 {
		return nil, pkgerrors.InvalidPrice
	}

	provider, err := s.users.GetByPublicID(ctx, req.ProviderID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}

	booking := &model.Booking{
		ClientID:   user.ID,
		ProviderID: provider.ID,
		StartsAt:   req.StartsAt,
		Status:     model.BookingStatusPending,
		PriceCents: req.PriceCents,
		Notes:      req.Notes,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		if isDuplicateKeyError(err) {
			return nil, pkgerrors.BookingDuplicate
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logger.Logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("client_id", user.ID),
		zap.Int64("provider_id", provider.ID),
	)
	return buildBookingData(booking), nil
}

// ListBookings 当前用户两侧的预约
func (s *BookingService) ListBookings(ctx context.Context, publicID int64) ([]dto.BookingData, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}

	bookings, err := s.bookings.ListForUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	out := make([]dto.BookingData, 0, len(bookings))
	for i := range bookings {
		out = append(out, *buildBookingData(&bookings[i]))
	}
	return out, nil
}

// CreateReview 只有预约的客户本人能评，一单一评，评分 1-5
func (s *BookingService) CreateReview(ctx context.Context, publicID, bookingID int64, req *dto.CreateReviewRequest) (*dto.ReviewData, error) {
	user, err := s.users.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, pkgerrors.UserNotFound
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, pkgerrors.InvalidRating
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.BookingNotFound
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if booking.ClientID != user.ID {
		return nil, pkgerrors.BookingNotFound
	}

	review := &model.Review{
		BookingID: booking.ID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.bookings.CreateReview(ctx, review); err != nil {
		if isDuplicateKeyError(err) {
			return nil, pkgerrors.BookingDuplicate
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return &dto.ReviewData{
		BookingID: review.BookingID,
		Rating:    review.Rating,
		Comment:   review.Comment,
	}, nil
}

func buildBookingData(b *model.Booking) *dto.BookingData {
	return &dto.BookingData{
		ID:         b.ID,
		ClientID:   b.ClientID,
		ProviderID: b.ProviderID,
		StartsAt:   b.StartsAt,
		Status:     string(b.Status),
		PriceCents: b.PriceCents,
		Notes:      b.Notes,
	}
}

// isDuplicateKeyError 同时覆盖 gorm 的统一错误和各驱动的原始文案
func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
