package model

import "github.com/shopspring/decimal"

// 販売明細
// 単価はカート追加時点のスナップショット
type SaleItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	SaleID    int64           `gorm:"not null;index" json:"venta_id"`
	BookID    int64           `gorm:"not null;index" json:"libro_id"`
	Quantity  int64           `gorm:"not null" json:"cantidad"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"precio_unitario"`

	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" json:"libro,omitempty"`
}

func (i SaleItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}
