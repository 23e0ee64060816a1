package model

import "time"

type MovementKind string

const (
	MovementIn  MovementKind = "ENTRADA"
	MovementOut MovementKind = "SALIDA"
)

func (k MovementKind) Valid() bool {
	return k == MovementIn || k == MovementOut
}

// 在庫入出庫の履歴（追記のみ）
type InventoryMovement struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	BookID    int64        `gorm:"not null;index" json:"libro_id"`
	Kind      MovementKind `gorm:"type:varchar(10);not null" json:"tipo_movimiento"`
	Quantity  int64        `gorm:"not null" json:"cantidad"`
	UserID    int64        `gorm:"not null;index" json:"usuario_id"`
	Reason    string       `gorm:"type:varchar(255)" json:"motivo"`
	CreatedAt time.Time    `gorm:"not null;index" json:"fecha"`

	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT" json:"-"`
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"-"`
}
