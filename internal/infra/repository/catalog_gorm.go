package repository

import (
	"context"
	"strings"

	"bookstore/internal/domain/model"
	repo "bookstore/internal/repository"

	"gorm.io/gorm"
)

// 著者
type AuthorGormRepository struct {
	db *gorm.DB
}

func NewAuthorGormRepository(db *gorm.DB) *AuthorGormRepository {
	return &AuthorGormRepository{db: db}
}

func (r *AuthorGormRepository) List(ctx context.Context) ([]model.Author, error) {
	var out []model.Author
	if err := r.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return []model.Author{}, err
	}
	return out, nil
}

func (r *AuthorGormRepository) FindByID(ctx context.Context, id int64) (model.Author, error) {
	var a model.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return model.Author{}, translate(err)
	}
	return a, nil
}

func (r *AuthorGormRepository) Create(ctx context.Context, a model.Author) (model.Author, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Author{}, translate(err)
	}
	return a, nil
}

func (r *AuthorGormRepository) Update(ctx context.Context, a model.Author) error {
	res := r.db.WithContext(ctx).Model(&model.Author{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"name":        a.Name,
		"nationality": a.Nationality,
	})
	return affected(res)
}

func (r *AuthorGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Author{}, id))
}

// カテゴリ
type CategoryGormRepository struct {
	db *gorm.DB
}

func NewCategoryGormRepository(db *gorm.DB) *CategoryGormRepository {
	return &CategoryGormRepository{db: db}
}

func (r *CategoryGormRepository) List(ctx context.Context) ([]model.Category, error) {
	var out []model.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return []model.Category{}, err
	}
	return out, nil
}

func (r *CategoryGormRepository) FindByID(ctx context.Context, id int64) (model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) Create(ctx context.Context, c model.Category) (model.Category, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Category{}, translate(err)
	}
	return c, nil
}

func (r *CategoryGormRepository) Update(ctx context.Context, c model.Category) error {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":        c.Name,
		"description": c.Description,
	})
	return affected(res)
}

func (r *CategoryGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Category{}, id))
}

// 顧客
type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// qは名前と documento を対象
func (r *ClientGormRepository) List(ctx context.Context, q string, p repo.Page) ([]model.Client, int64, error) {
	var out []model.Client
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Client{})
	if s := strings.TrimSpace(q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name ILIKE ? OR document ILIKE ?", like, like)
	}
	if err := tx.Count(&total).Error; err != nil {
		return []model.Client{}, 0, err
	}
	if err := tx.Order("name asc").Order("id asc").Offset(p.Offset()).Limit(p.Limit).Find(&out).Error; err != nil {
		return []model.Client{}, 0, err
	}
	return out, total, nil
}

func (r *ClientGormRepository) FindByID(ctx context.Context, id int64) (model.Client, error) {
	var c model.Client
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Client{}, translate(err)
	}
	return c, nil
}

func (r *ClientGormRepository) Create(ctx context.Context, c model.Client) (model.Client, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Client{}, translate(err)
	}
	return c, nil
}

func (r *ClientGormRepository) Update(ctx context.Context, c model.Client) error {
	res := r.db.WithContext(ctx).Model(&model.Client{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"document": c.Document,
		"name":     c.Name,
		"email":    c.Email,
		"phone":    c.Phone,
		"address":  c.Address,
	})
	return affected(res)
}

func (r *ClientGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Client{}, id))
}

// 仕入先
type SupplierGormRepository struct {
	db *gorm.DB
}

func NewSupplierGormRepository(db *gorm.DB) *SupplierGormRepository {
	return &SupplierGormRepository{db: db}
}

func (r *SupplierGormRepository) List(ctx context.Context) ([]model.Supplier, error) {
	var out []model.Supplier
	if err := r.db.WithContext(ctx).Order("name asc").Find(&out).Error; err != nil {
		return []model.Supplier{}, err
	}
	return out, nil
}

func (r *SupplierGormRepository) FindByID(ctx context.Context, id int64) (model.Supplier, error) {
	var s model.Supplier
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return model.Supplier{}, translate(err)
	}
	return s, nil
}

func (r *SupplierGormRepository) Create(ctx context.Context, s model.Supplier) (model.Supplier, error) {
	if err := r.db.WithContext(ctx).Create(&s).Error; err != nil {
		return model.Supplier{}, translate(err)
	}
	return s, nil
}

func (r *SupplierGormRepository) Update(ctx context.Context, s model.Supplier) error {
	res := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", s.ID).Updates(map[string]interface{}{
		"tax_id":       s.TaxID,
		"name":         s.Name,
		"contact_name": s.ContactName,
		"phone":        s.Phone,
		"email":        s.Email,
		"address":      s.Address,
	})
	return affected(res)
}

func (r *SupplierGormRepository) Delete(ctx context.Context, id int64) error {
	return affected(r.db.WithContext(ctx).Delete(&model.Supplier{}, id))
}
