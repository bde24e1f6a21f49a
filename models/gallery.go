package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Gallery is one portfolio collection shown on the site.
type Gallery struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	Title       string    `gorm:"type:varchar(200);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CoverKey    string    `gorm:"type:varchar(512)" json:"cover_key"`
	Published   bool      `gorm:"index;not null;default:false" json:"published"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Images []GalleryImage `gorm:"foreignKey:GalleryID" json:"images,omitempty"`
}

// GalleryImage is a single photo inside a gallery. Keys point at S3 objects.
type GalleryImage struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GalleryID uuid.UUID      `gorm:"type:uuid;index;not null" json:"gallery_id"`
	Key       string         `gorm:"type:varchar(512);not null" json:"key"`
	Caption   string         `gorm:"type:varchar(300)" json:"caption"`
	Width     int            `json:"width"`
	Height    int            `json:"height"`
	SortOrder int            `gorm:"index;not null;default:0" json:"sort_order"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
