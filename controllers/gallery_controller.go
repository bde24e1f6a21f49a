package controllers

import (
	"fmt"
	"net/http"
	"path"
	"strconv"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultPerPage = 12
	maxPerPage     = 100

	galleryUploadExpiry = 15 * time.Minute
)

type GalleryController struct {
	Galleries *services.GalleryService
	Store     services.ObjectStore // nil when S3 is not configured
}

func NewGalleryController(galleries *services.GalleryService, store services.ObjectStore) *GalleryController {
	return &GalleryController{Galleries: galleries, Store: store}
}

// ListGalleries returns the published galleries for the portfolio index.
func (gc *GalleryController) ListGalleries(c *gin.Context) {
	galleries, serr := gc.Galleries.ListPublished(c.Request.Context())
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"galleries": galleries})
}

// GalleryImages returns one page of a gallery. The front end keeps calling
// with increasing page numbers while hasMore is true.
func (gc *GalleryController) GalleryImages(c *gin.Context) {
	page, perPage := parsePagination(c)

	result, serr := gc.Galleries.ImagePage(c.Request.Context(), c.Param("slug"), page, perPage)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreateGallery adds a portfolio collection. Admin only.
func (gc *GalleryController) CreateGallery(c *gin.Context) {
	var req struct {
		Slug        string `json:"slug" binding:"required"`
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Published   bool   `json:"published"`
		SortOrder   int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	gallery := &models.Gallery{
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
		SortOrder:   req.SortOrder,
	}
	if serr := gc.Galleries.CreateGallery(c.Request.Context(), gallery); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, gallery)
}

// PresignImageUpload returns a presigned PUT for a new gallery image.
func (gc *GalleryController) PresignImageUpload(c *gin.Context) {
	if gc.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Uploads are temporarily unavailable"})
		return
	}

	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"contentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	key := fmt.Sprintf("galleries/%s/%s-%s", c.Param("slug"), uuid.New().String()[:8], path.Base(req.Filename))
	url, headers, err := gc.Store.PresignUpload(c.Request.Context(), key, req.ContentType, galleryUploadExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, services.UploadSlot{
		UploadURL: url,
		Method:    "PUT",
		Key:       key,
		Headers:   headers,
		ExpiresIn: int64(galleryUploadExpiry.Seconds()),
	})
}

// AddImage attaches an already-uploaded object to a gallery.
func (gc *GalleryController) AddImage(c *gin.Context) {
	var req struct {
		Key       string `json:"key" binding:"required"`
		Caption   string `json:"caption"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	image := &models.GalleryImage{
		Key:       req.Key,
		Caption:   req.Caption,
		Width:     req.Width,
		Height:    req.Height,
		SortOrder: req.SortOrder,
	}
	if serr := gc.Galleries.AddImage(c.Request.Context(), c.Param("slug"), image); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, image)
}

// parsePagination clamps page and perPage to sane bounds rather than
// rejecting the request.
func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", strconv.Itoa(defaultPerPage)))
	if err != nil || perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
