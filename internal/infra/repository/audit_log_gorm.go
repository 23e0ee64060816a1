package repository

import (
	"context"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxAuditPage = 200

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

// 操作本体とは別に書く（失敗の扱いは呼び出し側）
func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	log.Actor = nil
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(&log).Error)
}

// 新しい順。操作したユーザーの名前も付ける
func (r *AuditLogGormRepository) List(ctx context.Context, f repo.AuditLogFilter) ([]model.AuditLog, int64, error) {
	if f.Limit <= 0 || f.Limit > maxAuditPage {
		f.Limit = 50
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.AuditLog{}).Scopes(auditFilter(f)).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var logs []model.AuditLog
	err := r.db.WithContext(ctx).
		Scopes(auditFilter(f)).
		Preload("Actor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "role")
		}).
		Order("id DESC").
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&logs).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return logs, total, nil
}

func auditFilter(f repo.AuditLogFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if f.ActorUserID != nil {
			q = q.Where("actor_user_id = ?", *f.ActorUserID)
		}
		if f.Action != nil {
			q = q.Where("action = ?", *f.Action)
		}
		if f.ResourceType != nil {
			q = q.Where("resource_type = ?", *f.ResourceType)
		}
		if f.ResourceID != nil {
			q = q.Where("resource_id = ?", *f.ResourceID)
		}
		if f.Since != nil {
			q = q.Where("created_at >= ?", *f.Since)
		}
		if f.Until != nil {
			q = q.Where("created_at < ?", *f.Until)
		}
		return q
	}
}
