package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity types shown on the student activity feed
const (
	ActivityCourseProgress    = "COURSE_PROGRESS"
	ActivityCertificateIssued = "CERTIFICATE_ISSUED"
	ActivityUnlockRequest     = "UNLOCK_REQUEST"
)

// ActivityLog records user-visible activity (enrollments, completions,
// certificate issuance)
type ActivityLog struct {
	gorm.Model
	UserID  uint           `json:"user_id" gorm:"index;not null"`
	Type    string         `json:"type" gorm:"index"`
	Message string         `json:"message"`
	Data    datatypes.JSON `json:"data"`
}
