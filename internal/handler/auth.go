package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"TidyElephant/internal/model/dto"
	"TidyElephant/internal/service"
	"TidyElephant/pkg/response"
)

// SendCode 发送验证码
// POST /v1/auth/phone/send-code
func SendCode(ctx context.Context, c *app.RequestContext) {
	var req dto.SendCodeRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Verification().SendCode(ctx, req.Phone)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// VerifyCode 验证码校验，通过后发 token
// POST /v1/auth/phone/verify
func VerifyCode(ctx context.Context, c *app.RequestContext) {
	var req dto.VerifyCodeRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Verification().SubmitCode(ctx, req.Phone, req.Code)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}

// ResetVerification 用户换了手机号重填时，丢掉旧号码的会话状态
// POST /v1/auth/phone/reset
func ResetVerification(ctx context.Context, c *app.RequestContext) {
	var req dto.ResetVerificationRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	if err := service.Verification().Reset(ctx, req.Phone); err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, nil)
}

// RefreshToken 刷新访问令牌
// POST /v1/auth/token/refresh
func RefreshToken(ctx context.Context, c *app.RequestContext) {
	var req dto.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	resp, err := service.Auth().RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	response.Success(ctx, c, resp)
}
