package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 書籍（在庫を持つ商品）
type Book struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ISBN       string          `gorm:"type:varchar(20);not null;uniqueIndex" json:"isbn"`
	Title      string          `gorm:"type:varchar(255);not null" json:"titulo"`
	AuthorID   int64           `gorm:"not null;index" json:"autor_id"`
	CategoryID int64           `gorm:"not null;index" json:"categoria_id"`
	Price      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"precio"`
	Stock      int64           `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	MinStock   int64           `gorm:"not null;default:0" json:"stock_minimo"`
	CreatedAt  time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Author   *Author   `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT" json:"autor,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"categoria,omitempty"`
}

// 最低在庫を下回っているか
func (b Book) IsLowStock() bool {
	return b.Stock <= b.MinStock
}
