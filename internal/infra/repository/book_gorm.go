package repository

import (
	"context"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

type BookGormRepository struct {
	db *gorm.DB
}

// DI
func NewBookGormRepository(db *gorm.DB) *BookGormRepository {
	return &BookGormRepository{db: db}
}

// 検索/著者/カテゴリ/ページング付きで返す。
func (r *BookGormRepository) List(ctx context.Context, q repo.BookListQuery) ([]model.Book, int64, error) {
	var books []model.Book
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Book{})

	// qはタイトルとISBNを対象
	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("title ILIKE ? OR isbn ILIKE ?", like, like)
	}
	if q.AuthorID != nil {
		tx = tx.Where("author_id = ?", *q.AuthorID)
	}
	if q.CategoryID != nil {
		tx = tx.Where("category_id = ?", *q.CategoryID)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Book{}, 0, err
	}

	err := tx.Preload("Author").Preload("Category").
		Order("title asc").Order("id asc").
		Offset(q.Offset()).Limit(q.Limit).
		Find(&books).Error
	if err != nil {
		return []model.Book{}, 0, err
	}
	return books, total, nil
}

// 最低在庫以下の書籍（在庫の少ない順）
func (r *BookGormRepository) ListLowStock(ctx context.Context) ([]model.Book, error) {
	var books []model.Book
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Category").
		Where("stock <= min_stock").
		Order("stock asc").Order("id asc").
		Find(&books).Error
	if err != nil {
		return []model.Book{}, err
	}
	return books, nil
}

func (r *BookGormRepository) FindByID(ctx context.Context, id int64) (model.Book, error) {
	var b model.Book
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Category").
		First(&b, id).Error
	if err != nil {
		return model.Book{}, translate(err)
	}
	return b, nil
}

func (r *BookGormRepository) Create(ctx context.Context, b model.Book) (model.Book, error) {
	b.Author, b.Category = nil, nil
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Book{}, translate(err)
	}
	return b, nil
}

// 在庫数は更新しない（在庫は入出庫と販売でのみ動く）
func (r *BookGormRepository) Update(ctx context.Context, b model.Book) error {
	res := r.db.WithContext(ctx).Model(&model.Book{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"isbn":        b.ISBN,
		"title":       b.Title,
		"author_id":   b.AuthorID,
		"category_id": b.CategoryID,
		"price":       b.Price,
		"min_stock":   b.MinStock,
	})
	return affected(res)
}

func (r *BookGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Book{}, id))
}

func (r *BookGormRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Book{}).Where("author_id = ?", authorID).Count(&n).Error
	return n, err
}

func (r *BookGormRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Book{}).Where("category_id = ?", categoryID).Count(&n).Error
	return n, err
}
