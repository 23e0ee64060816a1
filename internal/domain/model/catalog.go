package model

import "time"

type Author struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"nombre"`
	Nationality string    `gorm:"type:varchar(100)" json:"nacionalidad"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type Category struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"nombre"`
	Description string    `gorm:"type:text" json:"descripcion"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 顧客。documentは一意
type Client struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Document  string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"documento"`
	Name      string    `gorm:"type:varchar(200);not null" json:"nombre"`
	Email     string    `gorm:"type:varchar(150)" json:"email"`
	Phone     string    `gorm:"type:varchar(30)" json:"telefono"`
	Address   string    `gorm:"type:varchar(255)" json:"direccion"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 仕入先。tax_idは一意
type Supplier struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TaxID       string    `gorm:"type:varchar(20);not null;uniqueIndex" json:"ruc"`
	Name        string    `gorm:"type:varchar(200);not null" json:"nombre"`
	ContactName string    `gorm:"type:varchar(150)" json:"contacto"`
	Phone       string    `gorm:"type:varchar(30)" json:"telefono"`
	Email       string    `gorm:"type:varchar(150)" json:"email"`
	Address     string    `gorm:"type:varchar(255)" json:"direccion"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
