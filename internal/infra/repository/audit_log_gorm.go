package repository

import (
	"context"
	"fmt"

	"storefront/internal/domain/model"

	"gorm.io/gorm"
)

// 監査ログは追記のみ。更新・削除はしない
type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// 注文ステータス変更と同じTxで呼ばれる
func (r *AuditLogGormRepository) Create(ctx context.Context, entry model.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("insert audit log %s/%d: %w", entry.ResourceType, entry.ResourceID, err)
	}
	return nil
}
