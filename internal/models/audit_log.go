package models

import "time"

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Actor    string `gorm:"size:255"`         // session e-mail, empty for anonymous calls
	Entity   string `gorm:"size:50;not null"` // "asset", "brand", "company"...
	EntityID uint
	Action   string `gorm:"size:50;not null"` // "create", "update", "delete", "deactivate"
	Details  string `gorm:"type:text"`
}

func (AuditLog) TableName() string { return "audit_logs" }
