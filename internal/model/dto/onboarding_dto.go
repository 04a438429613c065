package dto

import "time"

// ========== 入驻流程相关 DTO ==========

// OnboardingStepData 单个步骤
type OnboardingStepData struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	SortOrder   int        `json:"sort_order"`
	Status      string     `json:"status"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// OnboardingProgressResponse 整条步骤链
type OnboardingProgressResponse struct {
	Steps []OnboardingStepData `json:"steps"`
	// Complete 整条链是否已走完
	Complete bool `json:"complete"`
}

// CreateProfileRequest 服务商档案提交
type CreateProfileRequest struct {
	DisplayName     string       `json:"display_name" binding:"required"`
	Bio             string       `json:"bio"`
	HourlyRateCents int64        `json:"hourly_rate_cents" binding:"required"`
	EIN             string       `json:"ein"`
	CategoryIDs     []string     `json:"category_ids" binding:"required"`
	Address         *AddressData `json:"address"`
}

// AddressData 地址
type AddressData struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// ProfileResponse 服务商档案
type ProfileResponse struct {
	DisplayName     string         `json:"display_name"`
	Bio             string         `json:"bio"`
	HourlyRateCents int64          `json:"hourly_rate_cents"`
	EIN             string         `json:"ein,omitempty"`
	Categories      []CategoryData `json:"categories"`
	Address         *AddressData   `json:"address,omitempty"`
	ProvisionStatus string         `json:"provision_status"`
	FeePaid         bool           `json:"fee_paid"`
}

// CategoryData 服务分类
type CategoryData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
