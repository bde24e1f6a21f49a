package services

import (
	"context"
	"fmt"
	"html"
	"net/http"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/sender"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingResult is the outcome of a booking request. Quote-only session
// types produce a booking without a payment intent; the client is directed
// to the contact flow instead.
type BookingResult struct {
	BookingID     string                        `json:"bookingId"`
	Status        string                        `json:"status"`
	PaymentIntent *models.PaymentIntentResponse `json:"paymentIntent,omitempty"`
}

// BookingService reserves photo sessions. Deposits run through the same
// payment pipeline as retouch orders.
type BookingService struct {
	repo      repository.BookingRepository
	validator *RequestValidator
	payments  *PaymentService
	pricing   PricingConfig
	email     sender.EmailSender
	logger    *zap.Logger
}

func NewBookingService(
	repo repository.BookingRepository,
	validator *RequestValidator,
	payments *PaymentService,
	pricing PricingConfig,
	email sender.EmailSender,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:      repo,
		validator: validator,
		payments:  payments,
		pricing:   pricing,
		email:     email,
		logger:    logger,
	}
}

// Create validates the booking, persists it, then drives the deposit
// payment. A custom-priced session type parks the booking as a quote
// request rather than failing.
func (s *BookingService) Create(ctx context.Context, req *models.BookingRequest, clientIP string) (*BookingResult, *PaymentError) {
	if violations := s.validator.ValidateBooking(req); violations != nil {
		return nil, validationError(violations)
	}

	deposit := s.pricing.CalculateAmount(req.SessionType, 1, false)

	booking := &models.Booking{
		SessionType:   req.SessionType,
		SessionDate:   req.SessionDate,
		Notes:         req.Notes,
		Status:        models.BookingStatusPendingDeposit,
		DepositAmount: deposit,
		Currency:      s.pricing.Currency,
		CustomerName:  req.CustomerInfo.Name,
		CustomerEmail: req.CustomerInfo.Email,
	}
	if deposit == 0 {
		booking.Status = models.BookingStatusQuoteRequested
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		s.logger.Error("Failed to store booking", zap.Error(err))
		return nil, &PaymentError{Kind: ErrKindUnknown, Message: err.Error()}
	}

	if deposit == 0 {
		s.sendQuoteAck(ctx, booking)
		return &BookingResult{
			BookingID: booking.ID.String(),
			Status:    booking.Status,
		}, nil
	}

	orderReq := &models.OrderRequest{
		ServiceID:    req.SessionType,
		Quantity:     1,
		CustomerInfo: req.CustomerInfo,
	}
	intent, perr := s.payments.CreatePaymentIntent(ctx, orderReq, clientIP)
	if perr != nil {
		return nil, perr
	}

	return &BookingResult{
		BookingID:     booking.ID.String(),
		Status:        booking.Status,
		PaymentIntent: intent,
	}, nil
}

// Confirm marks a booking confirmed once its deposit payment succeeded and
// sends the confirmation email.
func (s *BookingService) Confirm(ctx context.Context, bookingID string) *ServiceError {
	booking, serr := s.find(ctx, bookingID)
	if serr != nil {
		return serr
	}

	if booking.Status != models.BookingStatusPendingDeposit {
		return &ServiceError{
			StatusCode: http.StatusConflict,
			Message:    fmt.Sprintf("booking cannot be confirmed from status %q", booking.Status),
		}
	}

	if err := s.repo.UpdateStatus(ctx, booking.ID, models.BookingStatusConfirmed, nil); err != nil {
		s.logger.Error("Failed to confirm booking", zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to confirm booking"}
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your %s on %s is confirmed. We look forward to seeing you!</p>",
		html.EscapeString(booking.CustomerName),
		html.EscapeString(booking.SessionType),
		booking.SessionDate.Format("January 2, 2006"),
	)
	if _, err := s.email.SendEmail(ctx, booking.CustomerEmail, "Your session is confirmed", body); err != nil {
		s.logger.Warn("Failed to send booking confirmation", zap.Error(err))
	}

	return nil
}

func (s *BookingService) find(ctx context.Context, bookingID string) (*models.Booking, *ServiceError) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid booking id"}
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Booking not found"}
	}
	return booking, nil
}

func (s *BookingService) sendQuoteAck(ctx context.Context, booking *models.Booking) {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Thanks for your interest in a %s. We price these individually; we'll be in touch within one business day.</p>",
		html.EscapeString(booking.CustomerName),
		html.EscapeString(booking.SessionType),
	)
	if _, err := s.email.SendEmail(ctx, booking.CustomerEmail, "We received your request", body); err != nil {
		s.logger.Warn("Failed to send quote acknowledgement", zap.Error(err))
	}
}
