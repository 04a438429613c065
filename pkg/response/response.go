package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"TidyElephant/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	def, ok := err.(errors.Definition)
	if !ok {
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case "TOO_MANY_REQUESTS", "VERIFICATION_RESEND_COOLDOWN",
		"VERIFICATION_MAX_SEND_ATTEMPTS", "VERIFICATION_MAX_CHECK_ATTEMPTS":
		return http.StatusTooManyRequests // 429
	case "INVALID_PHONE_NUMBER", "PHONE_NOT_MOBILE",
		"VERIFICATION_NOT_STARTED", "VERIFICATION_CODE_INVALID",
		"VERIFICATION_CODE_MALFORMED", "VERIFICATION_CODE_ALREADY_TRIED",
		"INVALID_REQUEST", "INVALID_EIN",
		"CATEGORY_SELECTION_EMPTY", "CATEGORY_SELECTION_BOUNDS",
		"CATEGORY_DUPLICATE", "CATEGORY_INVALID",
		"INVALID_ACCOUNT_INFO", "INVALID_AVAILABILITY", "TIMEZONE_REQUIRED",
		"INVALID_RATING", "INVALID_PRICE", "ONBOARDING_STEP_INVALID":
		return http.StatusBadRequest // 400
	case "UNAUTHORIZED":
		return http.StatusUnauthorized // 401
	case "PHONE_NOT_VERIFIED", "ONBOARDING_FEE_UNPAID":
		return http.StatusForbidden // 403
	case "USER_NOT_FOUND", "PROFILE_NOT_FOUND", "BOOKING_NOT_FOUND", "CONNECT_ACCOUNT_MISSING":
		return http.StatusNotFound // 404
	case "PROFILE_ALREADY_EXISTS", "BOOKING_DUPLICATE", "PROVISIONING_IN_PROGRESS", "ONBOARDING_FLOW_COMPLETE":
		return http.StatusConflict // 409
	case "PAYMENT_PROVIDER_UNAVAILABLE", "CALENDAR_UNAVAILABLE", "VERIFICATION_UNAVAILABLE":
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string

	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
