package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/service"
	"TidyElephant/pkg/response"
)

// CreateSchedule 提交周可用时段，触发后台开通
// POST /v1/onboarding/calendar/schedule
func CreateSchedule(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	var req dto.CreateScheduleRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Calendar().RequestProvisioning(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// GetScheduleStatus 查询开通进度
// GET /v1/onboarding/calendar/status
func GetScheduleStatus(ctx context.Context, c *app.RequestContext) {
	userID, ok := currentUserID(ctx, c)
	if !ok {
		return
	}

	resp, err := service.Calendar().ProvisionStatus(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}
