package repository

import (
	"context"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす
// 判定と減算は1文で行う（同時販売でもマイナスにならない）
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, bookID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ? AND stock >= ?", bookID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 入庫
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, bookID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", bookID).
		Update("stock", gorm.Expr("stock + ?", qty))
	return affected(res)
}

// 履歴作成
func (r *InventoryGormRepository) CreateMovement(ctx context.Context, m model.InventoryMovement) (model.InventoryMovement, error) {
	m.Book, m.User = nil, nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return model.InventoryMovement{}, translate(err)
	}
	return m, nil
}

// 新しい順
func (r *InventoryGormRepository) ListMovements(ctx context.Context, f repo.MovementListFilter) ([]model.InventoryMovement, int64, error) {
	var out []model.InventoryMovement
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.InventoryMovement{})
	if f.BookID != nil {
		tx = tx.Where("book_id = ?", *f.BookID)
	}
	if err := tx.Count(&total).Error; err != nil {
		return []model.InventoryMovement{}, 0, err
	}
	err := tx.Order("created_at desc").Order("id desc").
		Offset(f.Offset()).Limit(f.Limit).
		Find(&out).Error
	if err != nil {
		return []model.InventoryMovement{}, 0, err
	}
	return out, total, nil
}

func (r *InventoryGormRepository) CountMovementsByBook(ctx context.Context, bookID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.InventoryMovement{}).Where("book_id = ?", bookID).Count(&n).Error
	return n, err
}
