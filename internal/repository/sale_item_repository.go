package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type SaleItemRepository interface {
	Create(ctx context.Context, item model.SaleItem) (int64, error)
	ListBySaleID(ctx context.Context, saleID int64) ([]model.SaleItem, error)
	CountByBook(ctx context.Context, bookID int64) (int64, error)
}
