package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"TidyElephant/internal/handler"
	"TidyElephant/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	{
		auth.POST("/token/refresh", handler.RefreshToken)

		// 验证码端点按 IP 限流
		phone := auth.Group("/phone", middleware.VerificationRateLimitMiddleware())
		{
			phone.POST("/send-code", handler.SendCode)
			phone.POST("/verify", handler.VerifyCode)
			phone.POST("/reset", handler.ResetVerification)
		}
	}

	// 公开的分类列表
	v1.GET("/categories", handler.ListCategories)

	// 入驻流程路由
	onboarding := v1.Group("/onboarding")
	onboarding.Use(middleware.AuthMiddleware())
	onboarding.Use(middleware.GeneralRateLimitMiddleware())
	{
		onboarding.GET("/steps", handler.GetOnboardingProgress)
		onboarding.GET("/profile", handler.GetProviderProfile)
		onboarding.POST("/profile", middleware.MutationRateLimitMiddleware(), handler.CreateProviderProfile)

		payments := onboarding.Group("/payments")
		{
			payments.POST("/account", middleware.MutationRateLimitMiddleware(), handler.CreateConnectAccount)
			payments.GET("/account/status", handler.GetAccountStatus)
			payments.POST("/fee/confirm", middleware.MutationRateLimitMiddleware(), handler.ConfirmOnboardingFee)
		}

		calendar := onboarding.Group("/calendar")
		{
			calendar.POST("/schedule", middleware.MutationRateLimitMiddleware(), handler.CreateSchedule)
			calendar.GET("/status", handler.GetScheduleStatus)
		}
	}

	// 预约路由
	bookings := v1.Group("/bookings")
	bookings.Use(middleware.AuthMiddleware())
	bookings.Use(middleware.GeneralRateLimitMiddleware())
	{
		bookings.GET("", handler.ListBookings)
		bookings.POST("", middleware.MutationRateLimitMiddleware(), handler.CreateBooking)
		bookings.POST("/:booking_id/review", middleware.MutationRateLimitMiddleware(), handler.CreateReview)
	}
}
