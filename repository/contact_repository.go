package repository

import (
	"context"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	MarkNotified(ctx context.Context, id uuid.UUID) error
}

type gormContactRepo struct {
	db *gorm.DB
}

func NewGormContactRepo(db *gorm.DB) ContactRepository {
	return &gormContactRepo{db: db}
}

func (r *gormContactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *gormContactRepo) MarkNotified(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("notified", true).Error
}
