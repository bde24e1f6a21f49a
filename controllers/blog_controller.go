package controllers

import (
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
)

type BlogController struct {
	Blog *services.BlogService
}

func NewBlogController(blog *services.BlogService) *BlogController {
	return &BlogController{Blog: blog}
}

// ListPosts returns published posts, newest first.
func (bc *BlogController) ListPosts(c *gin.Context) {
	page, perPage := parsePagination(c)

	result, serr := bc.Blog.ListPublished(c.Request.Context(), page, perPage)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPost returns a single published post by slug. Drafts 404.
func (bc *BlogController) GetPost(c *gin.Context) {
	post, serr := bc.Blog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost stores a new post. Admin only.
func (bc *BlogController) CreatePost(c *gin.Context) {
	var req struct {
		Slug      string `json:"slug" binding:"required"`
		Title     string `json:"title" binding:"required"`
		Excerpt   string `json:"excerpt"`
		Body      string `json:"body" binding:"required"`
		CoverKey  string `json:"cover_key"`
		Published bool   `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	post := &models.BlogPost{
		Slug:      req.Slug,
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Body:      req.Body,
		CoverKey:  req.CoverKey,
		Published: req.Published,
	}
	if serr := bc.Blog.Create(c.Request.Context(), post); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, post)
}

// UpdatePost edits an existing post. Omitted fields keep their value.
func (bc *BlogController) UpdatePost(c *gin.Context) {
	var req struct {
		Title     *string `json:"title"`
		Excerpt   *string `json:"excerpt"`
		Body      *string `json:"body"`
		CoverKey  *string `json:"cover_key"`
		Published *bool   `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	post, serr := bc.Blog.Update(c.Request.Context(), c.Param("slug"), func(p *models.BlogPost) {
		if req.Title != nil {
			p.Title = *req.Title
		}
		if req.Excerpt != nil {
			p.Excerpt = *req.Excerpt
		}
		if req.Body != nil {
			p.Body = *req.Body
		}
		if req.CoverKey != nil {
			p.CoverKey = *req.CoverKey
		}
		if req.Published != nil {
			p.Published = *req.Published
		}
	})
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, post)
}
