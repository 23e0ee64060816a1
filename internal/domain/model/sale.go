package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 販売ヘッダ。作成後は変更しない
type Sale struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  *int64          `gorm:"index" json:"cliente_id"`
	UserID    int64           `gorm:"not null;index" json:"usuario_id"`
	Total     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`
	CreatedAt time.Time       `gorm:"not null;index" json:"fecha"`

	Client *Client    `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT" json:"cliente,omitempty"`
	User   *User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
	Items  []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"detalles,omitempty"`
}
