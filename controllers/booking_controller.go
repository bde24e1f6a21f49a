package controllers

import (
	"context"
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
)

// BookingCreator is implemented by services.BookingService.
type BookingCreator interface {
	Create(ctx context.Context, req *models.BookingRequest, clientIP string) (*services.BookingResult, *services.PaymentError)
	Confirm(ctx context.Context, bookingID string) *services.ServiceError
}

type BookingController struct {
	Bookings BookingCreator
}

func NewBookingController(bookings BookingCreator) *BookingController {
	return &BookingController{Bookings: bookings}
}

// CreateBooking reserves a session. Priced session types return a payment
// intent for the deposit; custom-priced ones come back as quote requests.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, perr := bc.Bookings.Create(c.Request.Context(), &req, c.ClientIP())
	if perr != nil {
		respondPipelineError(c, perr)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ConfirmBooking finalizes a booking after its deposit settled.
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	if serr := bc.Bookings.Confirm(c.Request.Context(), c.Param("id")); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "confirmed"})
}
