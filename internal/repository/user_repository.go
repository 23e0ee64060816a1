package repository

import (
	"context"
	"time"

	"bookstore/internal/domain/model"
)

// 保存・取得を約束
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// 見つからない場合はErrNotFound
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// 名前・メール・ロール・有効/無効
	Update(ctx context.Context, user *model.User) error
	// last_login_atだけを書く（他の列は読み直さない）
	TouchLastLogin(ctx context.Context, userID int64, at time.Time) error
	// トークンのバージョンを＋１（発行済みトークンを失効させる）
	IncrementTokenVersion(ctx context.Context, userID int64) error
}
