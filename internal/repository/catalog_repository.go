package repository

import (
	"context"

	"bookstore/internal/domain/model"
)

type AuthorRepository interface {
	List(ctx context.Context) ([]model.Author, error)
	FindByID(ctx context.Context, id int64) (model.Author, error)
	Create(ctx context.Context, a model.Author) (model.Author, error)
	Update(ctx context.Context, a model.Author) error
	Delete(ctx context.Context, id int64) error
}

type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id int64) error
}

type ClientRepository interface {
	List(ctx context.Context, q string, p Page) ([]model.Client, int64, error)
	FindByID(ctx context.Context, id int64) (model.Client, error)
	Create(ctx context.Context, c model.Client) (model.Client, error)
	Update(ctx context.Context, c model.Client) error
	Delete(ctx context.Context, id int64) error
}

type SupplierRepository interface {
	List(ctx context.Context) ([]model.Supplier, error)
	FindByID(ctx context.Context, id int64) (model.Supplier, error)
	Create(ctx context.Context, s model.Supplier) (model.Supplier, error)
	Update(ctx context.Context, s model.Supplier) error
	Delete(ctx context.Context, id int64) error
}
