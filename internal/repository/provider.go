package repository

import (
	"context"
	"time"

	"TidyElephant/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProviderRepo 服务商档案与分类表访问
type ProviderRepo struct {
	db *gorm.DB
}

func NewProviderRepo(db *gorm.DB) *ProviderRepo {
	return &ProviderRepo{db: db}
}

func (r *ProviderRepo) GetByUserID(ctx context.Context, userID int64) (*model.ProviderProfile, error) {
	var profile model.ProviderProfile
	err := r.db.WithContext(ctx).
		Preload("Categories").
		First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProviderRepo) Create(ctx context.Context, profile *model.ProviderProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProviderRepo) Save(ctx context.Context, profile *model.ProviderProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// UpdateFields 只更新给定字段，避免零值覆盖
func (r *ProviderRepo) UpdateFields(ctx context.Context, userID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.ProviderProfile{}).
		Where("user_id = ?", userID).
		Updates(fields).Error
}

func (r *ProviderRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("slug ASC").Find(&categories).Error
	return categories, err
}

func (r *ProviderRepo) GetCategoriesByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *ProviderRepo) UpdateProvisionStatus(ctx context.Context, userID int64, status model.ProvisionStatus) error {
	return r.db.WithContext(ctx).Model(&model.ProviderProfile{}).
		Where("user_id = ?", userID).
		Update("provision_status", status).Error
}

// ListStuckProvisioning 找出长时间停在 pending/failed 的档案，供调度器重新入队
func (r *ProviderRepo) ListStuckProvisioning(ctx context.Context, olderThan time.Time) ([]model.ProviderProfile, error) {
	var profiles []model.ProviderProfile
	err := r.db.WithContext(ctx).
		Where("provision_status IN ? AND updated_at < ?",
			[]model.ProvisionStatus{model.ProvisionStatusPending, model.ProvisionStatusFailed}, olderThan).
		Find(&profiles).Error
	return profiles, err
}
