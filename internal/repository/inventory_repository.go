package repository

import (
	"bookstore/internal/domain/model"
	"context"
)

type MovementListFilter struct {
	Page
	BookID *int64
}

type InventoryRepository interface {
	// 在庫が足りるときだけ減算
	DecreaseStockIfEnough(ctx context.Context, bookID int64, qty int64) (bool, error)

	// 在庫加算（入庫）
	IncreaseStock(ctx context.Context, bookID int64, qty int64) error

	// 入出庫履歴（追記のみ）
	CreateMovement(ctx context.Context, m model.InventoryMovement) (model.InventoryMovement, error)
	ListMovements(ctx context.Context, f MovementListFilter) ([]model.InventoryMovement, int64, error)
	CountMovementsByBook(ctx context.Context, bookID int64) (int64, error)
}
