package repository

import (
	"context"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleGormRepository struct {
	db *gorm.DB
}

func NewSaleGormRepository(db *gorm.DB) *SaleGormRepository {
	return &SaleGormRepository{db: db}
}

// ヘッダだけ保存（明細は別に1行ずつ）
func (r *SaleGormRepository) Create(ctx context.Context, sale model.Sale) (int64, error) {
	sale.Items = nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&sale).Error; err != nil {
		return 0, translate(err)
	}
	return sale.ID, nil
}

func (r *SaleGormRepository) FindByID(ctx context.Context, saleID int64) (model.Sale, error) {
	var s model.Sale
	if err := r.db.WithContext(ctx).Preload("Client").First(&s, saleID).Error; err != nil {
		return model.Sale{}, translate(err)
	}
	return s, nil
}

// 新しい順
func (r *SaleGormRepository) List(ctx context.Context, p repo.Page) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Sale{})
	if err := tx.Count(&total).Error; err != nil {
		return []model.Sale{}, 0, err
	}
	err := tx.Preload("Client").
		Order("created_at desc").Order("id desc").
		Offset(p.Offset()).Limit(p.Limit).
		Find(&sales).Error
	if err != nil {
		return []model.Sale{}, 0, err
	}
	return sales, total, nil
}

func (r *SaleGormRepository) CountByClient(ctx context.Context, clientID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).Where("client_id = ?", clientID).Count(&n).Error
	return n, err
}

type SaleItemGormRepository struct {
	db *gorm.DB
}

func NewSaleItemGormRepository(db *gorm.DB) *SaleItemGormRepository {
	return &SaleItemGormRepository{db: db}
}

func (r *SaleItemGormRepository) Create(ctx context.Context, item model.SaleItem) (int64, error) {
	item.Book = nil
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&item).Error; err != nil {
		return 0, translate(err)
	}
	return item.ID, nil
}

// 明細はカート順（id順）
func (r *SaleItemGormRepository) ListBySaleID(ctx context.Context, saleID int64) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.db.WithContext(ctx).Preload("Book").Where("sale_id = ?", saleID).Order("id asc").Find(&items).Error
	if err != nil {
		return []model.SaleItem{}, err
	}
	return items, nil
}

func (r *SaleItemGormRepository) CountByBook(ctx context.Context, bookID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.SaleItem{}).Where("book_id = ?", bookID).Count(&n).Error
	return n, err
}
