package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/service"
	"TidyElephant/pkg/errors"
	"TidyElephant/pkg/response"
)

// CreateBooking 下单
// POST /v1/bookings
func CreateBooking(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Booking().CreateBooking(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// ListBookings 当前用户的预约
// GET /v1/bookings
func ListBookings(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.Booking().ListBookings(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// CreateReview 提交评价
// POST /v1/bookings/:booking_id/review
func CreateReview(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.BookingNotFound)
		return
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Booking().CreateReview(ctx, userID, bookingID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// ListCategories 全量服务分类
// GET /v1/categories
func ListCategories(ctx context.Context, c *app.RequestContext) {
	resp, err := service.Provider().ListCategories(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}
