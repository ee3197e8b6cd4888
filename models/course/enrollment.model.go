package course

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment states
const (
	EnrollmentActive    = "ACTIVE"
	EnrollmentCompleted = "COMPLETED"
)

// Enrollment links a user to a course they are taking
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enroll_user_course"`
	CourseID    uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enroll_user_course"`
	Status      string     `json:"status" gorm:"default:'ACTIVE'"` // ACTIVE, COMPLETED
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}

// CourseProgress is a cached percentage-complete projection for a
// user/course pair. It is always recomputed from LessonProgress rows and
// is never an independent source of truth.
type CourseProgress struct {
	gorm.Model
	UserID             uint  `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CourseID           uint  `json:"course_id" gorm:"not null;uniqueIndex:idx_progress_user_course"`
	CompletedLessons   int   `json:"completed_lessons" gorm:"default:0"`
	TotalLessons       int   `json:"total_lessons" gorm:"default:0"`
	ProgressPercent    int   `json:"progress_percent" gorm:"default:0"` // round(100 * completed / total)
	LastViewedLessonID *uint `json:"last_viewed_lesson_id"`
	IsDeleted          bool  `gorm:"default:false"`
}

// LessonProgress tracks a user's completion of a single lesson
type LessonProgress struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_lesson_user"`
	LessonID    uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_lesson_user"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Completed   bool       `json:"completed" gorm:"default:false"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
