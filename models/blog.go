package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost is a studio journal entry.
type BlogPost struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug        string         `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title"`
	Excerpt     string         `gorm:"type:varchar(500)" json:"excerpt"`
	Body        string         `gorm:"type:text;not null" json:"body"`
	CoverKey    string         `gorm:"type:varchar(512)" json:"cover_key"`
	Published   bool           `gorm:"index;not null;default:false" json:"published"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
