package models

import "gorm.io/gorm"

// Project represents a paid downloadable/buildable project in the catalog
type Project struct {
	gorm.Model
	Title        string  `json:"title"`
	Slug         string  `json:"slug" gorm:"unique;not null"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0"`
	Difficulty   string  `json:"difficulty" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	ThumbnailURL string  `json:"thumbnail_url"`
	RepoURL      string  `json:"repo_url"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `gorm:"default:false"`
}
