package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/service"
	"TidyElephant/pkg/response"
)

// GetOnboardingProgress 获取当前用户的入驻进度
// GET /v1/onboarding/steps
func GetOnboardingProgress(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.Onboarding().Progress(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// CreateProviderProfile 创建服务商档案
// POST /v1/onboarding/profile
func CreateProviderProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Provider().CreateProfile(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// GetProviderProfile 查询当前用户的服务商档案
// GET /v1/onboarding/profile
func GetProviderProfile(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.Provider().GetProfile(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}
