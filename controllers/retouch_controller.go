package controllers

import (
	"context"
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RetouchManager is implemented by services.RetouchService.
type RetouchManager interface {
	CreateOrder(ctx context.Context, req *models.OrderRequest, amount int64, paymentID *uuid.UUID) (*models.RetouchOrder, *services.ServiceError)
	PresignUpload(ctx context.Context, orderID, filename, contentType string) (*services.UploadSlot, *services.ServiceError)
	StartProcessing(ctx context.Context, orderID string) (*models.RetouchOrder, *services.ServiceError)
	GetOrder(ctx context.Context, orderNumber string) (*models.RetouchOrder, *services.ServiceError)
}

type RetouchController struct {
	Retouch  RetouchManager
	Payments repository.PaymentRepository
}

func NewRetouchController(retouch RetouchManager, payments repository.PaymentRepository) *RetouchController {
	return &RetouchController{Retouch: retouch, Payments: payments}
}

// CreateOrder opens a retouch order for a settled payment. The order details
// come from the stored payment row, not from the client.
func (rc *RetouchController) CreateOrder(c *gin.Context) {
	var req struct {
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	payment, err := rc.Payments.FindByStripePaymentID(c.Request.Context(), req.PaymentIntentID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		return
	}
	if payment.Status != models.PaymentStatusSucceeded {
		c.JSON(http.StatusConflict, gin.H{"error": "Payment has not succeeded"})
		return
	}

	orderReq := &models.OrderRequest{
		ServiceID:    payment.ServiceID,
		Quantity:     payment.Quantity,
		RushDelivery: payment.RushDelivery,
		CustomerInfo: models.CustomerInfo{
			Name:  payment.CustomerName,
			Email: payment.CustomerEmail,
		},
	}

	order, serr := rc.Retouch.CreateOrder(c.Request.Context(), orderReq, payment.Amount, &payment.ID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// PresignUpload hands out one upload URL for the next photo of an order.
func (rc *RetouchController) PresignUpload(c *gin.Context) {
	var req struct {
		Filename    string `json:"filename" binding:"required"`
		ContentType string `json:"contentType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	slot, serr := rc.Retouch.PresignUpload(c.Request.Context(), c.Param("id"), req.Filename, req.ContentType)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, slot)
}

// StartProcessing queues a fully uploaded order for retouching.
func (rc *RetouchController) StartProcessing(c *gin.Context) {
	order, serr := rc.Retouch.StartProcessing(c.Request.Context(), c.Param("id"))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GetOrder returns the current state of an order by its order number.
func (rc *RetouchController) GetOrder(c *gin.Context) {
	order, serr := rc.Retouch.GetOrder(c.Request.Context(), c.Param("id"))
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, order)
}
