package repository

import (
	"context"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RetouchRepository interface {
	Create(ctx context.Context, order *models.RetouchOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.RetouchOrder, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*models.RetouchOrder, error)
	Update(ctx context.Context, order *models.RetouchOrder) error
}

type gormRetouchRepo struct {
	db *gorm.DB
}

func NewGormRetouchRepo(db *gorm.DB) RetouchRepository {
	return &gormRetouchRepo{db: db}
}

func (r *gormRetouchRepo) Create(ctx context.Context, order *models.RetouchOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *gormRetouchRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.RetouchOrder, error) {
	var order models.RetouchOrder
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRetouchRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*models.RetouchOrder, error) {
	var order models.RetouchOrder
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormRetouchRepo) Update(ctx context.Context, order *models.RetouchOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}
