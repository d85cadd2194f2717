package model

import (
	"time"
)

// AdminAuditLog is the trail of write requests made by authenticated usuarios
type AdminAuditLog struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UsuarioID   uint      `gorm:"not null;index" json:"usuario"`
	Action      string    `gorm:"type:varchar(100);not null" json:"action"` // create, update, delete
	Resource    string    `gorm:"type:varchar(100)" json:"resource"`        // e.g. "docente", "users"
	ResourceID  uint      `json:"resource_id"`
	Method      string    `gorm:"type:varchar(10)" json:"method"`
	Path        string    `gorm:"type:varchar(255)" json:"path"`
	StatusCode  int       `json:"status_code"`
	IPAddress   string    `gorm:"type:varchar(45)" json:"ip_address"`
	UserAgent   string    `gorm:"type:text" json:"user_agent"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Relationships
	Usuario *Usuario `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
