package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/service"
	"TidyElephant/pkg/response"
)

// CreateConnectAccount 开 connected account
// POST /v1/onboarding/payments/account
func CreateConnectAccount(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Payments().CreateConnectAccount(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// GetAccountStatus 三视图账户状态
// GET /v1/onboarding/payments/account/status
func GetAccountStatus(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.Payments().AccountStatus(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// ConfirmOnboardingFee 确认入驻费
// POST /v1/onboarding/payments/fee/confirm
func ConfirmOnboardingFee(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.Payments().ConfirmOnboardingFee(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}
