package course

import "gorm.io/gorm"

// Course lifecycle states. Only PUBLISHED courses are visible to students.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Course represents a learning course
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Slug         string  `json:"slug" gorm:"unique;not null"`
	Description  string  `json:"description" gorm:"type:text"`
	Author       string  `json:"author"`
	Category     string  `json:"category"`
	Price        float64 `json:"price" gorm:"default:0"`
	Duration     int64   `json:"duration" gorm:"default:0"` // duration in hours
	ThumbnailURL string  `json:"thumbnail_url"`
	Status       string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED, ARCHIVED
	IsDeleted    bool    `gorm:"default:false"`
}
