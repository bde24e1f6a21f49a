package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment statuses.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusFailed    = "failed"
)

// Payment records one payment intent created for a retouch order or a
// booking deposit. Amount is in minor currency units.
type Payment struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceID          string    `gorm:"type:varchar(64);index;not null"`
	Quantity           int       `gorm:"not null"`
	RushDelivery       bool      `gorm:"not null"`
	Amount             int64     `gorm:"not null"`
	Currency           string    `gorm:"type:varchar(10);not null"`
	Status             string    `gorm:"type:varchar(20);not null"`
	CustomerName       string    `gorm:"type:varchar(100);not null"`
	CustomerEmail      string    `gorm:"type:varchar(255);not null"`
	CustomerEmailHash  string    `gorm:"type:varchar(64);index;not null"`
	StripePaymentID    *string   `gorm:"uniqueIndex"`
	IdempotencyKey     string    `gorm:"type:varchar(80);index;not null"`
	StripeEventPayload *string   `gorm:"type:jsonb"` // audit trail for webhook updates
	SucceededAt        *time.Time
	FailedAt           *time.Time
	CreatedAt          time.Time      `gorm:"autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}
