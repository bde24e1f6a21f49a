package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Booking statuses.
const (
	BookingStatusPendingDeposit = "pending_deposit"
	BookingStatusQuoteRequested = "quote_requested"
	BookingStatusConfirmed      = "confirmed"
	BookingStatusCanceled       = "canceled"
)

// BookingRequest is the untrusted payload of POST /bookings. The session
// type doubles as a catalog id; its deposit drives the payment pipeline.
type BookingRequest struct {
	SessionType  string       `json:"sessionType" validate:"required"`
	SessionDate  time.Time    `json:"sessionDate" validate:"required"`
	Notes        string       `json:"notes" validate:"omitempty,max=2000"`
	CustomerInfo CustomerInfo `json:"customerInfo" validate:"required"`
}

// Booking is a photo session reservation held by a deposit.
type Booking struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	SessionType   string     `gorm:"type:varchar(64);index;not null"`
	SessionDate   time.Time  `gorm:"index;not null"`
	Notes         string     `gorm:"type:text"`
	Status        string     `gorm:"type:varchar(20);index;not null"`
	DepositAmount int64      `gorm:"not null"`
	Currency      string     `gorm:"type:varchar(10);not null"`
	CustomerName  string     `gorm:"type:varchar(100);not null"`
	CustomerEmail string     `gorm:"type:varchar(255);index;not null"`
	PaymentID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}
