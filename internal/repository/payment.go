package repository

import (
	"context"

	"TidyElephant/internal/model"

	"gorm.io/gorm"
)

// PaymentRepo 支付流水表访问
type PaymentRepo struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Create(ctx context.Context, txn *model.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *PaymentRepo) UpdateStatus(ctx context.Context, id int64, status model.PaymentStatus, externalRef string) error {
	fields := map[string]interface{}{"status": status}
	if externalRef != "" {
		fields["external_ref"] = externalRef
	}
	return r.db.WithContext(ctx).Model(&model.PaymentTransaction{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *PaymentRepo) ListForUser(ctx context.Context, userID int64) ([]model.PaymentTransaction, error) {
	var txns []model.PaymentTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}
