package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Retouch order statuses. Orders move
// awaiting_upload -> uploaded -> processing -> delivered, or to canceled.
const (
	RetouchStatusAwaitingUpload = "awaiting_upload"
	RetouchStatusUploaded       = "uploaded"
	RetouchStatusProcessing     = "processing"
	RetouchStatusDelivered      = "delivered"
	RetouchStatusCanceled       = "canceled"
)

// RetouchOrder is one paid retouching job: the customer uploads photos,
// the studio processes them, and the finished files are delivered by
// download link.
type RetouchOrder struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string    `gorm:"type:varchar(24);uniqueIndex;not null"`
	ServiceID     string    `gorm:"type:varchar(64);index;not null"`
	Quantity      int       `gorm:"not null"`
	RushDelivery  bool      `gorm:"not null"`
	Amount        int64     `gorm:"not null"`
	Currency      string    `gorm:"type:varchar(10);not null"`
	Status        string    `gorm:"type:varchar(20);index;not null"`
	CustomerName  string    `gorm:"type:varchar(100);not null"`
	CustomerEmail string    `gorm:"type:varchar(255);index;not null"`
	PaymentID     *uuid.UUID `gorm:"type:uuid;index"`
	UploadedCount int       `gorm:"not null;default:0"`
	DeliveryKey   *string   `gorm:"type:varchar(512)"` // S3 key of the delivered archive
	DeliveredAt   *time.Time
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// RetouchCompletedMessage is the SQS message body the retouching workers
// send when a job is finished.
type RetouchCompletedMessage struct {
	OrderNumber string `json:"order_number"`
	DeliveryKey string `json:"delivery_key"`
}

// RetouchEvent is the SNS payload published on retouch lifecycle changes.
type RetouchEvent struct {
	Type        string    `json:"type"` // e.g. "retouch_delivered"
	OrderNumber string    `json:"order_number"`
	ServiceID   string    `json:"service_id"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}
