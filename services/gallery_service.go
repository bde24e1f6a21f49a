package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	galleryListCachePrefix  = "galleries:v:"
	galleryCacheVersionKey  = "galleries:version"
	galleryCacheTTL         = 10 * time.Minute
	galleryCacheSetTimeout  = 5 * time.Second
)

// GalleryPage is one page of a gallery for the infinite-scroll client.
// HasMore tells the client whether to request the next page.
type GalleryPage struct {
	Images  []models.GalleryImage `json:"images"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"perPage"`
	Total   int64                 `json:"total"`
	HasMore bool                  `json:"hasMore"`
}

// GalleryService serves the portfolio: published gallery listings and
// paginated image pages, cached in Redis with version-key invalidation.
type GalleryService struct {
	repo   repository.GalleryRepository
	redis  *redis.Client
	logger *zap.Logger
}

func NewGalleryService(repo repository.GalleryRepository, redisClient *redis.Client, logger *zap.Logger) *GalleryService {
	return &GalleryService{repo: repo, redis: redisClient, logger: logger}
}

// ListPublished returns every published gallery, cover first.
func (s *GalleryService) ListPublished(ctx context.Context) ([]models.Gallery, *ServiceError) {
	galleries, err := s.repo.FindPublished(ctx)
	if err != nil {
		s.logger.Error("Failed to list galleries", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load galleries"}
	}
	return galleries, nil
}

// ImagePage returns one validated page of a published gallery's images.
func (s *GalleryService) ImagePage(ctx context.Context, slug string, page, perPage int) (*GalleryPage, *ServiceError) {
	if cached, ok := s.cachedPage(ctx, slug, page, perPage); ok {
		return cached, nil
	}

	gallery, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Gallery not found"}
		}
		s.logger.Error("Failed to load gallery", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load gallery"}
	}
	if !gallery.Published {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Gallery not found"}
	}

	offset := (page - 1) * perPage
	images, total, err := s.repo.ListImages(ctx, gallery.ID, offset, perPage)
	if err != nil {
		s.logger.Error("Failed to list gallery images", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load gallery images"}
	}

	result := &GalleryPage{
		Images:  images,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasMore: int64(offset+len(images)) < total,
	}

	s.cachePageAsync(slug, page, perPage, result)
	return result, nil
}

// CreateGallery adds a gallery and invalidates the list cache.
func (s *GalleryService) CreateGallery(ctx context.Context, gallery *models.Gallery) *ServiceError {
	if err := s.repo.Create(ctx, gallery); err != nil {
		s.logger.Error("Failed to create gallery", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create gallery"}
	}
	s.invalidate(ctx)
	return nil
}

// AddImage attaches an uploaded image to a gallery and invalidates caches.
func (s *GalleryService) AddImage(ctx context.Context, slug string, image *models.GalleryImage) *ServiceError {
	gallery, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Gallery not found"}
		}
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load gallery"}
	}

	image.GalleryID = gallery.ID
	if err := s.repo.AddImage(ctx, image); err != nil {
		s.logger.Error("Failed to add gallery image", zap.String("slug", slug), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to add image"}
	}
	s.invalidate(ctx)
	return nil
}

// --- cache plumbing ---

func (s *GalleryService) cachedPage(ctx context.Context, slug string, page, perPage int) (*GalleryPage, bool) {
	if s.redis == nil {
		return nil, false
	}

	version, err := s.cacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	data, err := s.redis.Get(ctx, s.pageKey(version, slug, page, perPage)).Result()
	if err != nil {
		return nil, false
	}

	var result GalleryPage
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		s.logger.Warn("Failed to unmarshal cached gallery page", zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (s *GalleryService) cachePageAsync(slug string, page, perPage int, result *GalleryPage) {
	if s.redis == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), galleryCacheSetTimeout)
		defer cancel()

		version, err := s.cacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		data, err := json.Marshal(result)
		if err != nil {
			return
		}
		if err := s.redis.Set(bgCtx, s.pageKey(version, slug, page, perPage), data, galleryCacheTTL).Err(); err != nil {
			s.logger.Warn("Failed to cache gallery page", zap.Error(err))
		}
	}()
}

// invalidate bumps the cache version, orphaning every cached page at once.
func (s *GalleryService) invalidate(ctx context.Context) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Incr(ctx, galleryCacheVersionKey).Err(); err != nil {
		s.logger.Warn("Failed to invalidate gallery cache", zap.Error(err))
	}
}

func (s *GalleryService) cacheVersion(ctx context.Context) (int64, error) {
	version, err := s.redis.Get(ctx, galleryCacheVersionKey).Int64()
	if err == redis.Nil {
		// first read seeds the version
		if err := s.redis.Set(ctx, galleryCacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return version, err
}

func (s *GalleryService) pageKey(version int64, slug string, page, perPage int) string {
	return fmt.Sprintf("%s%d:%s:%d:%d", galleryListCachePrefix, version, slug, page, perPage)
}
