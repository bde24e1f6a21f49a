package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactRequest is the untrusted payload of POST /contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// ContactMessage persists a contact form submission. The notification email
// to the studio is best-effort; the row is the source of truth.
type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Subject   string    `gorm:"type:varchar(200)"`
	Message   string    `gorm:"type:text;not null"`
	Notified  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
