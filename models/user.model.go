package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role keys carried in the JWT and stored on the user record
const (
	RoleAdmin   = "ADMIN"
	RoleMentor  = "MENTOR"
	RoleStudent = "STUDENT"
)

type User struct {
	gorm.Model
	ProfileImage        string `gorm:"default:''"`
	Name                string `gorm:"default:''"`
	Email               string `gorm:"unique;not null"`
	Mobile              string `gorm:"default:''"`
	Password            string `gorm:"not null"`
	Roles               string `gorm:"default:'STUDENT'"` // comma separated: ADMIN, MENTOR, STUDENT
	DefaultRole         string `gorm:"default:'STUDENT'"`
	IsEmailVerified     bool   `gorm:"default:false"`
	FailedLoginAttempts int    `gorm:"default:0"`
	LastFailedLogin     *time.Time
	IsBlocked           bool `gorm:"default:false"`
	BlockedUntil        *time.Time
	IsActive            bool `gorm:"default:true"` // soft deactivation, users are never physically deleted
	IsDeleted           bool `gorm:"default:false"`
	LastLogin           time.Time
}

// RoleList splits the stored comma-separated roles into a slice
func (u *User) RoleList() []string {
	parts := strings.Split(u.Roles, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if r := strings.TrimSpace(p); r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

// HasRole reports whether the user carries the given role
func (u *User) HasRole(role string) bool {
	for _, r := range u.RoleList() {
		if r == role {
			return true
		}
	}
	return false
}
