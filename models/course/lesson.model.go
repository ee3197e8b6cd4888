package course

import "gorm.io/gorm"

// Lesson represents a single lesson within a module
type Lesson struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	ModuleID    uint   `json:"module_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"index"`
	Content     string `json:"content" gorm:"type:text"`
	VideoURL    string `json:"video_url"`
	Duration    int64  `json:"duration" gorm:"default:0"` // minutes
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}
