package model

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "VENDEDOR"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller
}

type User struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string     `gorm:"type:varchar(150);not null" json:"nombre"`
	Email        string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'VENDEDOR'" json:"rol"`
	TokenVersion int        `gorm:"not null;default:0" json:"-"`
	IsActive     bool       `gorm:"not null;default:true" json:"activo"`
	LastLoginAt  *time.Time `json:"ultimo_acceso,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
