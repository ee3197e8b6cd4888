package models

import "gorm.io/gorm"

// Page is an admin-editable content page (about, contact, policies)
type Page struct {
	gorm.Model
	Title       string `json:"title"`
	Slug        string `json:"slug" gorm:"unique;not null"`
	Body        string `json:"body" gorm:"type:text"`
	IsPublished bool   `json:"is_published" gorm:"default:false"`
	IsDeleted   bool   `gorm:"default:false"`
}

// NavbarItem configures one entry of the public site navigation
type NavbarItem struct {
	gorm.Model
	Label      string `json:"label"`
	URL        string `json:"url"`
	OrderIndex int    `json:"order_index" gorm:"default:0"`
	IsVisible  bool   `json:"is_visible" gorm:"default:true"`
	IsDeleted  bool   `gorm:"default:false"`
}

// MediaAsset tracks an uploaded file referenced by courses, lessons or pages
type MediaAsset struct {
	gorm.Model
	FileName   string `json:"file_name"`
	URL        string `json:"url" gorm:"not null"`
	MimeType   string `json:"mime_type"`
	SizeBytes  int64  `json:"size_bytes" gorm:"default:0"`
	UploadedBy uint   `json:"uploaded_by" gorm:"index"`
	IsDeleted  bool   `gorm:"default:false"`
}

// FAQ is a public frequently-asked-question entry
type FAQ struct {
	gorm.Model
	Question    string `json:"question"`
	Answer      string `json:"answer" gorm:"type:text"`
	OrderIndex  int    `json:"order_index" gorm:"default:0"`
	IsPublished bool   `json:"is_published" gorm:"default:true"`
	IsDeleted   bool   `gorm:"default:false"`
}
