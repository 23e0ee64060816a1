package repository

import (
	"context"
	"time"

	"bookstore/internal/domain/model"
)

// 監査ログ検索。nilの条件は絞り込まない。
// Untilは含まない（[Since, Until)）
type AuditLogFilter struct {
	Page
	ActorUserID  *int64
	Action       *model.AuditAction
	ResourceType *model.AuditResourceType
	ResourceID   *int64
	Since        *time.Time
	Until        *time.Time
}

// 追記専用。更新・削除はない
type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
	// 新しい順
	List(ctx context.Context, f AuditLogFilter) ([]model.AuditLog, int64, error)
}
