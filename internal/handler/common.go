package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"TidyElephant/internal/middleware"
	"TidyElephant/pkg/errors"
	"TidyElephant/pkg/response"
)

// currentUserID 从 JWT 上下文取 public_id，取不到时直接写 401 响应
func currentUserID(ctx context.Context, c *app.RequestContext) (int64, bool) {
	uid, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.Unauthorized)
		return 0, false
	}

	id, err := strconv.ParseInt(uid, 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.InvalidUserID)
		return 0, false
	}
	return id, true
}
