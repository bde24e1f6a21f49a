package controllers

import (
	"context"
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
)

// ContactSubmitter is implemented by services.ContactService.
type ContactSubmitter interface {
	Submit(ctx context.Context, req *models.ContactRequest, clientIP string) *services.PaymentError
}

type ContactController struct {
	Contact ContactSubmitter
}

func NewContactController(contact ContactSubmitter) *ContactController {
	return &ContactController{Contact: contact}
}

// SubmitContact accepts a contact form submission.
func (cc *ContactController) SubmitContact(c *gin.Context) {
	var req models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if perr := cc.Contact.Submit(c.Request.Context(), &req, c.ClientIP()); perr != nil {
		respondPipelineError(c, perr)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "received"})
}
