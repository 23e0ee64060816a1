package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type SaleRepository interface {
	Create(ctx context.Context, sale model.Sale) (int64, error)
	FindByID(ctx context.Context, saleID int64) (model.Sale, error)
	List(ctx context.Context, p Page) ([]model.Sale, int64, error)
	CountByClient(ctx context.Context, clientID int64) (int64, error)
}
