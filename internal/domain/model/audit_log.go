package model

import "time"

// 管理者操作の種類
type AuditAction string

const (
	AuditActionUpdateBook       AuditAction = "UPDATE_BOOK"
	AuditActionDeleteBook       AuditAction = "DELETE_BOOK"
	AuditActionUpdateUserStatus AuditAction = "UPDATE_USER_STATUS"
)

func (a AuditAction) Valid() bool {
	switch a {
	case AuditActionUpdateBook, AuditActionDeleteBook, AuditActionUpdateUserStatus:
		return true
	}
	return false
}

type AuditResourceType string

const (
	AuditResourceBook AuditResourceType = "book"
	AuditResourceUser AuditResourceType = "user"
)

// 書籍の更新・削除、ユーザーの有効/無効の記録。
// before/afterは変更対象のJSONスナップショット
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"usuario_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"accion"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index:idx_audit_resource" json:"recurso"`
	ResourceID   int64             `gorm:"not null;index:idx_audit_resource" json:"recurso_id"`
	BeforeJSON   string            `gorm:"type:text" json:"antes,omitempty"`
	AfterJSON    string            `gorm:"type:text" json:"despues,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"fecha"`

	Actor *User `gorm:"foreignKey:ActorUserID;constraint:OnDelete:RESTRICT" json:"usuario,omitempty"`
}
