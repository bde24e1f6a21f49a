package repository

import (
	"context"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GalleryRepository interface {
	Create(ctx context.Context, gallery *models.Gallery) error
	FindPublished(ctx context.Context) ([]models.Gallery, error)
	FindBySlug(ctx context.Context, slug string) (*models.Gallery, error)
	AddImage(ctx context.Context, image *models.GalleryImage) error
	ListImages(ctx context.Context, galleryID uuid.UUID, offset, limit int) ([]models.GalleryImage, int64, error)
}

type gormGalleryRepo struct {
	db *gorm.DB
}

func NewGormGalleryRepo(db *gorm.DB) GalleryRepository {
	return &gormGalleryRepo{db: db}
}

func (r *gormGalleryRepo) Create(ctx context.Context, gallery *models.Gallery) error {
	return r.db.WithContext(ctx).Create(gallery).Error
}

func (r *gormGalleryRepo) FindPublished(ctx context.Context) ([]models.Gallery, error) {
	var galleries []models.Gallery
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("sort_order asc, created_at desc").
		Find(&galleries).Error
	return galleries, err
}

func (r *gormGalleryRepo) FindBySlug(ctx context.Context, slug string) (*models.Gallery, error) {
	var gallery models.Gallery
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&gallery).Error; err != nil {
		return nil, err
	}
	return &gallery, nil
}

func (r *gormGalleryRepo) AddImage(ctx context.Context, image *models.GalleryImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *gormGalleryRepo) ListImages(ctx context.Context, galleryID uuid.UUID, offset, limit int) ([]models.GalleryImage, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.GalleryImage{}).
		Where("gallery_id = ?", galleryID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var images []models.GalleryImage
	err := r.db.WithContext(ctx).
		Where("gallery_id = ?", galleryID).
		Order("sort_order asc, created_at asc").
		Offset(offset).Limit(limit).
		Find(&images).Error
	return images, total, err
}
