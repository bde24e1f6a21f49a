package services

import (
	"context"
	"testing"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type mockGalleryRepo struct {
	galleries map[string]*models.Gallery
	images    map[uuid.UUID][]models.GalleryImage
}

func newMockGalleryRepo() *mockGalleryRepo {
	return &mockGalleryRepo{
		galleries: make(map[string]*models.Gallery),
		images:    make(map[uuid.UUID][]models.GalleryImage),
	}
}

func (m *mockGalleryRepo) Create(_ context.Context, g *models.Gallery) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	m.galleries[g.Slug] = g
	return nil
}

func (m *mockGalleryRepo) FindPublished(_ context.Context) ([]models.Gallery, error) {
	var out []models.Gallery
	for _, g := range m.galleries {
		if g.Published {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (m *mockGalleryRepo) FindBySlug(_ context.Context, slug string) (*models.Gallery, error) {
	if g, ok := m.galleries[slug]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGalleryRepo) AddImage(_ context.Context, img *models.GalleryImage) error {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	m.images[img.GalleryID] = append(m.images[img.GalleryID], *img)
	return nil
}

func (m *mockGalleryRepo) ListImages(_ context.Context, galleryID uuid.UUID, offset, limit int) ([]models.GalleryImage, int64, error) {
	all := m.images[galleryID]
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

var _ repository.GalleryRepository = (*mockGalleryRepo)(nil)

func seedGallery(t *testing.T, repo *mockGalleryRepo, slug string, published bool, imageCount int) *models.Gallery {
	t.Helper()
	g := &models.Gallery{Slug: slug, Title: slug, Published: published}
	assert.NoError(t, repo.Create(context.Background(), g))
	for i := 0; i < imageCount; i++ {
		assert.NoError(t, repo.AddImage(context.Background(), &models.GalleryImage{
			GalleryID: g.ID,
			Key:       "galleries/" + slug + "/img.jpg",
			SortOrder: i,
		}))
	}
	return g
}

func TestImagePage_PaginatesWithHasMore(t *testing.T) {
	repo := newMockGalleryRepo()
	seedGallery(t, repo, "weddings", true, 25)
	svc := NewGalleryService(repo, nil, zap.NewNop())

	page1, serr := svc.ImagePage(context.Background(), "weddings", 1, 10)
	assert.Nil(t, serr)
	assert.Len(t, page1.Images, 10)
	assert.Equal(t, int64(25), page1.Total)
	assert.True(t, page1.HasMore)

	page3, serr := svc.ImagePage(context.Background(), "weddings", 3, 10)
	assert.Nil(t, serr)
	assert.Len(t, page3.Images, 5)
	assert.False(t, page3.HasMore, "final page must stop the infinite scroll")
}

func TestImagePage_UnpublishedIs404(t *testing.T) {
	repo := newMockGalleryRepo()
	seedGallery(t, repo, "drafts", false, 3)
	svc := NewGalleryService(repo, nil, zap.NewNop())

	_, serr := svc.ImagePage(context.Background(), "drafts", 1, 10)
	assert.NotNil(t, serr)
	assert.Equal(t, 404, serr.StatusCode)

	_, serr = svc.ImagePage(context.Background(), "missing", 1, 10)
	assert.NotNil(t, serr)
	assert.Equal(t, 404, serr.StatusCode)
}

func TestListPublished_FiltersDrafts(t *testing.T) {
	repo := newMockGalleryRepo()
	seedGallery(t, repo, "live", true, 0)
	seedGallery(t, repo, "draft", false, 0)
	svc := NewGalleryService(repo, nil, zap.NewNop())

	galleries, serr := svc.ListPublished(context.Background())
	assert.Nil(t, serr)
	assert.Len(t, galleries, 1)
	assert.Equal(t, "live", galleries[0].Slug)
}
