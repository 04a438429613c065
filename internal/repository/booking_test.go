package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"TidyElephant/internal/model"
)

func setupBookingDB(t *testing.T) *BookingRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Booking{}, &model.Review{}))

	return NewBookingRepo(db)
}

func TestBookingDuplicateTuple(t *testing.T) {
	ctx := context.Background()
	repo := setupBookingDB(t)
	startsAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	first := &model.Booking{ClientID: 1, ProviderID: 2, StartsAt: startsAt, PriceCents: 5000}
	require.NoError(t, repo.Create(ctx, first))

	dup := &model.Booking{ClientID: 1, ProviderID: 2, StartsAt: startsAt, PriceCents: 5000}
	assert.Error(t, repo.Create(ctx, dup))

	// 换个时间就不冲突
	other := &model.Booking{ClientID: 1, ProviderID: 2, StartsAt: startsAt.Add(time.Hour), PriceCents: 5000}
	assert.NoError(t, repo.Create(ctx, other))
}

func TestListForUserCoversBothSides(t *testing.T) {
	ctx := context.Background()
	repo := setupBookingDB(t)
	startsAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &model.Booking{ClientID: 1, ProviderID: 2, StartsAt: startsAt, PriceCents: 5000}))
	require.NoError(t, repo.Create(ctx, &model.Booking{ClientID: 3, ProviderID: 1, StartsAt: startsAt, PriceCents: 8000}))
	require.NoError(t, repo.Create(ctx, &model.Booking{ClientID: 3, ProviderID: 2, StartsAt: startsAt.Add(time.Hour), PriceCents: 8000}))

	bookings, err := repo.ListForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)

	bookings, err = repo.ListForUser(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestReviewUniquePerBooking(t *testing.T) {
	ctx := context.Background()
	repo := setupBookingDB(t)
	startsAt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	booking := &model.Booking{ClientID: 1, ProviderID: 2, StartsAt: startsAt, PriceCents: 5000}
	require.NoError(t, repo.Create(ctx, booking))

	require.NoError(t, repo.CreateReview(ctx, &model.Review{BookingID: booking.ID, Rating: 5, Comment: "spotless"}))
	assert.Error(t, repo.CreateReview(ctx, &model.Review{BookingID: booking.ID, Rating: 1}))

	review, err := repo.GetReviewByBookingID(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}
