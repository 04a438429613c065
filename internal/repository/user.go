package repository

import (
	"context"

	"TidyElephant/internal/model"

	"gorm.io/gorm"
)

// UserRepo 用户表访问
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByPublicID(ctx context.Context, publicID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "public_id = ?", publicID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) GetByPhoneHash(ctx context.Context, phoneHash string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "phone_hash = ?", phoneHash).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepo) UpdateStatus(ctx context.Context, userID int64, status model.UserStatus) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("status", status).Error
}

func (r *UserRepo) Save(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// UpsertAddress 每个用户一条地址，已有则覆盖
func (r *UserRepo) UpsertAddress(ctx context.Context, addr *model.Address) error {
	var existing model.Address
	err := r.db.WithContext(ctx).First(&existing, "user_id = ?", addr.UserID).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.WithContext(ctx).Create(addr).Error
	}
	if err != nil {
		return err
	}

	addr.ID = existing.ID
	addr.CreatedAt = existing.CreatedAt
	return r.db.WithContext(ctx).Save(addr).Error
}

// GetAddress 用户地址，没有则返回 gorm.ErrRecordNotFound
func (r *UserRepo) GetAddress(ctx context.Context, userID int64) (*model.Address, error) {
	var addr model.Address
	if err := r.db.WithContext(ctx).First(&addr, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}
