package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/sender"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// PaymentCreator is implemented by services.PaymentService.
type PaymentCreator interface {
	CreatePaymentIntent(ctx context.Context, req *models.OrderRequest, clientIP string) (*models.PaymentIntentResponse, *services.PaymentError)
}

// WebhookParser verifies and decodes an incoming Stripe webhook request.
type WebhookParser interface {
	ParseWebhook(r *http.Request) (stripe.Event, error)
}

// EventPublisher matches pkg/aws.SNSPublisher.
type EventPublisher interface {
	Publish(ctx context.Context, topicArn string, message []byte) error
}

type PaymentController struct {
	Payments PaymentCreator
	Webhooks WebhookParser
	Repo     repository.PaymentRepository
	Events   EventPublisher
	Email    sender.EmailSender
	TopicARN string
	Logger   *zap.Logger
}

func NewPaymentController(
	payments PaymentCreator,
	webhooks WebhookParser,
	repo repository.PaymentRepository,
	events EventPublisher,
	email sender.EmailSender,
	topicARN string,
	logger *zap.Logger,
) *PaymentController {
	return &PaymentController{
		Payments: payments,
		Webhooks: webhooks,
		Repo:     repo,
		Events:   events,
		Email:    email,
		TopicARN: topicARN,
		Logger:   logger,
	}
}

// CreatePaymentIntent runs the order through the payment pipeline and returns
// the client secret the front end needs to confirm the payment.
func (pc *PaymentController) CreatePaymentIntent(c *gin.Context) {
	var req models.OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	resp, perr := pc.Payments.CreatePaymentIntent(c.Request.Context(), &req, c.ClientIP())
	if perr != nil {
		respondPipelineError(c, perr)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// StripeWebhook handles payment status updates pushed by Stripe. Unhandled
// event types are acknowledged without action so Stripe stops retrying them.
func (pc *PaymentController) StripeWebhook(c *gin.Context) {
	event, err := pc.Webhooks.ParseWebhook(c.Request)
	if err != nil {
		pc.Logger.Warn("Rejected webhook", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook"})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		pc.handlePaymentStatus(c.Request.Context(), event, models.PaymentStatusSucceeded)
	case "payment_intent.payment_failed":
		pc.handlePaymentStatus(c.Request.Context(), event, models.PaymentStatusFailed)
	}

	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

// handlePaymentStatus updates the stored payment and publishes the final
// state. Replayed events for already-final payments are no-ops.
func (pc *PaymentController) handlePaymentStatus(ctx context.Context, event stripe.Event, status string) {
	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		pc.Logger.Warn("Malformed payment intent in webhook", zap.String("event", string(event.Type)), zap.Error(err))
		return
	}

	payment, err := pc.Repo.FindByStripePaymentID(ctx, pi.ID)
	if err != nil {
		// Intent was created but never persisted, or the row belongs to
		// another environment. Nothing to reconcile.
		pc.Logger.Warn("Webhook for unknown payment", zap.String("stripe_payment_id", pi.ID))
		return
	}

	if payment.Status == models.PaymentStatusSucceeded || payment.Status == models.PaymentStatusFailed {
		return
	}

	now := time.Now().UTC()
	payload := string(event.Data.Raw)
	updates := map[string]interface{}{
		"status":               status,
		"stripe_event_payload": payload,
	}
	if status == models.PaymentStatusSucceeded {
		updates["succeeded_at"] = now
	} else {
		updates["failed_at"] = now
	}

	if err := pc.Repo.UpdateByStripePaymentID(ctx, pi.ID, updates); err != nil {
		pc.Logger.Error("Failed to update payment from webhook",
			zap.String("stripe_payment_id", pi.ID), zap.Error(err))
		return
	}

	pc.publishPaymentEvent(ctx, payment, status, now)

	if status == models.PaymentStatusSucceeded {
		pc.sendConfirmation(ctx, payment)
	}
}

// sendConfirmation is best effort; the payment is already final.
func (pc *PaymentController) sendConfirmation(ctx context.Context, payment *models.Payment) {
	if pc.Email == nil {
		return
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>We received your payment of %s. We'll be in touch about next steps shortly.</p>",
		html.EscapeString(payment.CustomerName),
		formatAmount(payment.Amount, payment.Currency),
	)
	if _, err := pc.Email.SendEmail(ctx, payment.CustomerEmail, "Payment received", body); err != nil {
		pc.Logger.Warn("Failed to send payment confirmation",
			zap.String("payment_id", payment.ID.String()), zap.Error(err))
	}
}

func formatAmount(minor int64, currency string) string {
	return fmt.Sprintf("%s %.2f", strings.ToUpper(currency), float64(minor)/100)
}

func (pc *PaymentController) publishPaymentEvent(ctx context.Context, payment *models.Payment, status string, at time.Time) {
	if pc.Events == nil || pc.TopicARN == "" {
		return
	}

	msg := models.PaymentEvent{
		Type:              "payment_" + status,
		PaymentID:         payment.ID.String(),
		ServiceID:         payment.ServiceID,
		Quantity:          payment.Quantity,
		RushDelivery:      payment.RushDelivery,
		Amount:            payment.Amount,
		Currency:          payment.Currency,
		CustomerEmailHash: payment.CustomerEmailHash,
		Timestamp:         at,
	}
	body, _ := json.Marshal(msg)

	if err := pc.Events.Publish(ctx, pc.TopicARN, body); err != nil {
		pc.Logger.Error("Failed to publish payment event",
			zap.String("payment_id", payment.ID.String()), zap.Error(err))
	}
}
