package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit actions
const (
	AuditActionPayment = "PAYMENT"
	AuditActionContent = "CONTENT"
	AuditActionUser    = "USER"
)

// Audited content types
const (
	AuditContentCourse  = "COURSE"
	AuditContentProject = "PROJECT"
	AuditContentLesson  = "LESSON"
	AuditContentUser    = "USER"
	AuditContentPage    = "PAGE"
)

// AuditLog is an append-only record of admin actions. Rows are never
// updated or deleted.
type AuditLog struct {
	gorm.Model
	ActorID     uint           `json:"actor_id" gorm:"index;not null"`
	Action      string         `json:"action" gorm:"index;not null"`
	ContentType string         `json:"content_type"`
	ContentID   uint           `json:"content_id"`
	Details     datatypes.JSON `json:"details"`
}
