package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/controllers"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubGalleryRepo struct {
	gallery *models.Gallery
	images  []models.GalleryImage
	total   int64

	lastOffset int
	lastLimit  int
}

func (s *stubGalleryRepo) Create(ctx context.Context, g *models.Gallery) error { return nil }

func (s *stubGalleryRepo) FindPublished(ctx context.Context) ([]models.Gallery, error) {
	if s.gallery == nil {
		return nil, nil
	}
	return []models.Gallery{*s.gallery}, nil
}

func (s *stubGalleryRepo) FindBySlug(ctx context.Context, slug string) (*models.Gallery, error) {
	if s.gallery == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.gallery, nil
}

func (s *stubGalleryRepo) AddImage(ctx context.Context, img *models.GalleryImage) error { return nil }

func (s *stubGalleryRepo) ListImages(ctx context.Context, galleryID uuid.UUID, offset, limit int) ([]models.GalleryImage, int64, error) {
	s.lastOffset = offset
	s.lastLimit = limit
	return s.images, s.total, nil
}

func galleryRouter(repo *stubGalleryRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	gc := controllers.NewGalleryController(services.NewGalleryService(repo, nil, zap.NewNop()), nil)
	r.GET("/galleries", gc.ListGalleries)
	r.GET("/galleries/:slug/images", gc.GalleryImages)
	return r
}

func TestGalleryImages_PaginationClamped(t *testing.T) {
	repo := &stubGalleryRepo{
		gallery: &models.Gallery{ID: uuid.New(), Slug: "weddings", Published: true},
		total:   500,
	}
	r := galleryRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/galleries/weddings/images?page=-3&perPage=9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, repo.lastOffset)
	assert.Equal(t, 100, repo.lastLimit)
}

func TestGalleryImages_DefaultsApplied(t *testing.T) {
	repo := &stubGalleryRepo{
		gallery: &models.Gallery{ID: uuid.New(), Slug: "weddings", Published: true},
		total:   3,
	}
	r := galleryRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/galleries/weddings/images", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12, repo.lastLimit)

	var page services.GalleryPage
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.False(t, page.HasMore)
}

func TestGalleryImages_UnknownSlug(t *testing.T) {
	r := galleryRouter(&stubGalleryRepo{})

	req := httptest.NewRequest(http.MethodGet, "/galleries/nope/images", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListGalleries_OK(t *testing.T) {
	repo := &stubGalleryRepo{
		gallery: &models.Gallery{ID: uuid.New(), Slug: "weddings", Title: "Weddings", Published: true},
	}
	r := galleryRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/galleries", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "weddings")
}
