package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is a hash-verifiable proof of course completion, issued once
// per (user, course) when progress reaches 100%. The verification hash is
// sha256 over certificate number, user id, course id and the server secret;
// verification recomputes it and any mismatch invalidates the certificate.
type Certificate struct {
	gorm.Model
	UserID            uint      `json:"user_id" gorm:"index;not null"`
	CourseID          uint      `json:"course_id" gorm:"index;not null"`
	CertificateNumber string    `json:"certificate_number" gorm:"unique;not null"`
	VerificationHash  string    `json:"verification_hash"`
	IssuedAt          time.Time `json:"issued_at"`
	IsDeleted         bool      `gorm:"default:false"`
}
