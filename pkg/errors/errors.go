package errors

import "errors"

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized    = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	InvalidUserID   = Definition{Code: "INVALID_USER_ID", Message: "Invalid user ID format"}
	UserNotFound    = Definition{Code: "USER_NOT_FOUND", Message: "User not found"}
	TooManyRequests = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests"}
)

// 手机验证模块错误。
var (
	InvalidPhoneNumber           = Definition{Code: "INVALID_PHONE_NUMBER", Message: "A valid 10-digit US mobile number is required"}
	PhoneNotMobile               = Definition{Code: "PHONE_NOT_MOBILE", Message: "Phone number is not a mobile line"}
	VerificationNotStarted       = Definition{Code: "VERIFICATION_NOT_STARTED", Message: "No verification code was sent for this number"}
	VerificationCodeInvalid      = Definition{Code: "VERIFICATION_CODE_INVALID", Message: "Verification code invalid"}
	VerificationCodeMalformed    = Definition{Code: "VERIFICATION_CODE_MALFORMED", Message: "Verification code must be exactly 6 digits"}
	VerificationCodeAlreadyTried = Definition{Code: "VERIFICATION_CODE_ALREADY_TRIED", Message: "You already tried this code, request a new one"}
	VerificationResendCooldown   = Definition{Code: "VERIFICATION_RESEND_COOLDOWN", Message: "Please wait before requesting another code"}
	VerificationMaxSendAttempts  = Definition{Code: "VERIFICATION_MAX_SEND_ATTEMPTS", Message: "Maximum send attempts reached"}
	VerificationMaxCheckAttempts = Definition{Code: "VERIFICATION_MAX_CHECK_ATTEMPTS", Message: "Maximum code checks reached, request a new code"}
	VerificationUnavailable      = Definition{Code: "VERIFICATION_UNAVAILABLE", Message: "Verification service unavailable, try again later"}
)

// 服务商资料模块错误。
var (
	InvalidEIN              = Definition{Code: "INVALID_EIN", Message: "EIN is not valid"}
	CategorySelectionEmpty  = Definition{Code: "CATEGORY_SELECTION_EMPTY", Message: "Select at least one category"}
	CategorySelectionBounds = Definition{Code: "CATEGORY_SELECTION_BOUNDS", Message: "Too many categories selected"}
	CategoryDuplicate       = Definition{Code: "CATEGORY_DUPLICATE", Message: "Duplicate category selected"}
	CategoryInvalid         = Definition{Code: "CATEGORY_INVALID", Message: "Category ID is not a valid UUID"}
	PhoneNotVerified        = Definition{Code: "PHONE_NOT_VERIFIED", Message: "Phone number must be verified first"}
	ProfileAlreadyExists    = Definition{Code: "PROFILE_ALREADY_EXISTS", Message: "Provider profile already exists"}
	ProfileNotFound         = Definition{Code: "PROFILE_NOT_FOUND", Message: "Provider profile not found"}
)

// 支付账户模块错误。
var (
	InvalidAccountInfo         = Definition{Code: "INVALID_ACCOUNT_INFO", Message: "Account info outside the allowed field set"}
	PaymentProviderUnavailable = Definition{Code: "PAYMENT_PROVIDER_UNAVAILABLE", Message: "Payment provider unavailable, try again later"}
	ConnectAccountMissing      = Definition{Code: "CONNECT_ACCOUNT_MISSING", Message: "No connected account on file"}
	OnboardingFeeUnpaid        = Definition{Code: "ONBOARDING_FEE_UNPAID", Message: "Onboarding fee has not been paid"}
)

// 日历开通模块错误。
var (
	InvalidAvailability    = Definition{Code: "INVALID_AVAILABILITY", Message: "Weekly availability is invalid"}
	TimezoneRequired       = Definition{Code: "TIMEZONE_REQUIRED", Message: "A timezone is required"}
	CalendarUnavailable    = Definition{Code: "CALENDAR_UNAVAILABLE", Message: "Calendar provider unavailable, try again later"}
	ProvisioningInProgress = Definition{Code: "PROVISIONING_IN_PROGRESS", Message: "Calendar provisioning already in progress"}
)

// 引导流程错误。
var (
	OnboardingStepInvalid  = Definition{Code: "ONBOARDING_STEP_INVALID", Message: "Onboarding step invalid"}
	OnboardingFlowComplete = Definition{Code: "ONBOARDING_FLOW_COMPLETE", Message: "Onboarding flow already complete"}
)

// 预约模块错误。
var (
	BookingDuplicate = Definition{Code: "BOOKING_DUPLICATE", Message: "A booking for this provider at this time already exists"}
	BookingNotFound  = Definition{Code: "BOOKING_NOT_FOUND", Message: "Booking not found"}
	InvalidRating    = Definition{Code: "INVALID_RATING", Message: "Rating must be between 1 and 5"}
	InvalidPrice     = Definition{Code: "INVALID_PRICE", Message: "Price must be positive"}
)

// token 相关的底层错误，非业务码。
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in token")
)

// SkipMessageError 消费者希望 ack 但不重试时返回。
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "skip message: " + e.Reason
}

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:                 Unauthorized,
	InvalidUserID.Code:                InvalidUserID,
	UserNotFound.Code:                 UserNotFound,
	TooManyRequests.Code:              TooManyRequests,
	InvalidPhoneNumber.Code:           InvalidPhoneNumber,
	PhoneNotMobile.Code:               PhoneNotMobile,
	VerificationNotStarted.Code:       VerificationNotStarted,
	VerificationCodeInvalid.Code:      VerificationCodeInvalid,
	VerificationCodeMalformed.Code:    VerificationCodeMalformed,
	VerificationCodeAlreadyTried.Code: VerificationCodeAlreadyTried,
	VerificationResendCooldown.Code:   VerificationResendCooldown,
	VerificationMaxSendAttempts.Code:  VerificationMaxSendAttempts,
	VerificationMaxCheckAttempts.Code: VerificationMaxCheckAttempts,
	VerificationUnavailable.Code:      VerificationUnavailable,
	InvalidEIN.Code:                   InvalidEIN,
	CategorySelectionEmpty.Code:       CategorySelectionEmpty,
	CategorySelectionBounds.Code:      CategorySelectionBounds,
	CategoryDuplicate.Code:            CategoryDuplicate,
	CategoryInvalid.Code:              CategoryInvalid,
	PhoneNotVerified.Code:             PhoneNotVerified,
	ProfileAlreadyExists.Code:         ProfileAlreadyExists,
	ProfileNotFound.Code:              ProfileNotFound,
	InvalidAccountInfo.Code:           InvalidAccountInfo,
	PaymentProviderUnavailable.Code:   PaymentProviderUnavailable,
	ConnectAccountMissing.Code:        ConnectAccountMissing,
	OnboardingFeeUnpaid.Code:          OnboardingFeeUnpaid,
	InvalidAvailability.Code:          InvalidAvailability,
	TimezoneRequired.Code:             TimezoneRequired,
	CalendarUnavailable.Code:          CalendarUnavailable,
	ProvisioningInProgress.Code:       ProvisioningInProgress,
	OnboardingStepInvalid.Code:        OnboardingStepInvalid,
	OnboardingFlowComplete.Code:       OnboardingFlowComplete,
	BookingDuplicate.Code:             BookingDuplicate,
	BookingNotFound.Code:              BookingNotFound,
	InvalidRating.Code:                InvalidRating,
	InvalidPrice.Code:                 InvalidPrice,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
