package repository

import (
	"context"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"

	"gorm.io/gorm"
)

type BlogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	ListPublished(ctx context.Context, offset, limit int) ([]models.BlogPost, int64, error)
}

type gormBlogRepo struct {
	db *gorm.DB
}

func NewGormBlogRepo(db *gorm.DB) BlogRepository {
	return &gormBlogRepo{db: db}
}

func (r *gormBlogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *gormBlogRepo) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *gormBlogRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *gormBlogRepo) ListPublished(ctx context.Context, offset, limit int) ([]models.BlogPost, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.BlogPost{}).
		Where("published = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.BlogPost
	err := r.db.WithContext(ctx).
		Where("published = ?", true).
		Order("published_at desc").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}
