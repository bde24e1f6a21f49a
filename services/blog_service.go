package services

import (
	"context"
	"net/http"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// BlogPage is one page of published journal entries.
type BlogPage struct {
	Posts   []models.BlogPost `json:"posts"`
	Page    int               `json:"page"`
	PerPage int               `json:"perPage"`
	Total   int64             `json:"total"`
	HasMore bool              `json:"hasMore"`
}

type BlogService struct {
	repo   repository.BlogRepository
	logger *zap.Logger
}

func NewBlogService(repo repository.BlogRepository, logger *zap.Logger) *BlogService {
	return &BlogService{repo: repo, logger: logger}
}

// ListPublished returns a page of published posts, newest first.
func (s *BlogService) ListPublished(ctx context.Context, page, perPage int) (*BlogPage, *ServiceError) {
	offset := (page - 1) * perPage
	posts, total, err := s.repo.ListPublished(ctx, offset, perPage)
	if err != nil {
		s.logger.Error("Failed to list blog posts", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load posts"}
	}

	return &BlogPage{
		Posts:   posts,
		Page:    page,
		PerPage: perPage,
		Total:   total,
		HasMore: int64(offset+len(posts)) < total,
	}, nil
}

// GetBySlug returns a single published post. Drafts 404 like missing posts
// so unpublished slugs are not discoverable.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, *ServiceError) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Post not found"}
		}
		s.logger.Error("Failed to load blog post", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load post"}
	}
	if !post.Published {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Post not found"}
	}
	return post, nil
}

// Create stores a new post; publishing stamps PublishedAt.
func (s *BlogService) Create(ctx context.Context, post *models.BlogPost) *ServiceError {
	if post.Published && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}
	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("Failed to create blog post", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create post"}
	}
	return nil
}

// Update saves edits to an existing post.
func (s *BlogService) Update(ctx context.Context, slug string, apply func(*models.BlogPost)) (*models.BlogPost, *ServiceError) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Post not found"}
		}
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load post"}
	}

	apply(post)
	if post.Published && post.PublishedAt == nil {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.repo.Update(ctx, post); err != nil {
		s.logger.Error("Failed to update blog post", zap.String("slug", slug), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update post"}
	}
	return post, nil
}
