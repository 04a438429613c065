package service

import (
	"sync"

	"TidyElephant/internal/repository"
	"TidyElephant/pkg/payments"
	"TidyElephant/pkg/verify"
	"TidyElephant/storage/database"
)

// 单例装配：server 进程里各服务从这里取，测试用 New* 构造器自行注入
var (
	verificationService *VerificationService
	authService         *AuthService
	onboardingService   *OnboardingService
	providerService     *ProviderService
	paymentsService     *PaymentsService
	calendarService     *CalendarService
	bookingService      *BookingService

	initOnce sync.Once
)

func initServices() {
	db := database.DB()
	users := repository.NewUserRepo(db)
	providers := repository.NewProviderRepo(db)
	steps := repository.NewOnboardingRepo(db)
	bookings := repository.NewBookingRepo(db)
	txns := repository.NewPaymentRepo(db)

	onboardingService = NewOnboardingService(users, steps)
	verificationService = NewVerificationService(users, steps, verify.GetClient())
	authService = NewAuthService()
	providerService = NewProviderService(users, providers, onboardingService)
	paymentsService = NewPaymentsService(users, providers, txns, onboardingService, payments.GetClient())
	calendarService = NewCalendarService(users, providers)
	bookingService = NewBookingService(users, bookings)
}

func Verification() *VerificationService {
	initOnce.Do(initServices)
	return verificationService
}

func Auth() *AuthService {
	initOnce.Do(initServices)
	return authService
}

func Onboarding() *OnboardingService {
	initOnce.Do(initServices)
	return onboardingService
}

func Provider() *ProviderService {
	initOnce.Do(initServices)
	return providerService
}

func Payments() *PaymentsService {
	initOnce.Do(initServices)
	return paymentsService
}

func Calendar() *CalendarService {
	initOnce.Do(initServices)
	return calendarService
}

func Booking() *BookingService {
	initOnce.Do(initServices)
	return bookingService
}
