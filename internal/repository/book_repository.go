package repository

import (
	"bookstore/internal/domain/model"
	"context"
)

// 書籍一覧の検索条件
type BookListQuery struct {
	Page
	Q          string
	AuthorID   *int64
	CategoryID *int64
}

// 書籍の永続化（保存・取得）だけを約束。
type BookRepository interface {
	List(ctx context.Context, q BookListQuery) ([]model.Book, int64, error)
	ListLowStock(ctx context.Context) ([]model.Book, error)
	FindByID(ctx context.Context, id int64) (model.Book, error)

	Create(ctx context.Context, b model.Book) (model.Book, error)
	Update(ctx context.Context, b model.Book) error
	Delete(ctx context.Context, id int64) error

	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}
