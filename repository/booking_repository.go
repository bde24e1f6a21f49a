package repository

import (
	"context"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, paymentID *uuid.UUID) error
}

type gormBookingRepo struct {
	db *gorm.DB
}

func NewGormBookingRepo(db *gorm.DB) BookingRepository {
	return &gormBookingRepo{db: db}
}

func (r *gormBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *gormBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *gormBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string, paymentID *uuid.UUID) error {
	updates := map[string]interface{}{"status": status}
	if paymentID != nil {
		updates["payment_id"] = paymentID
	}
	return r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(updates).Error
}
