package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"github.com/stripe/stripe-go/v80/webhook"
)

// PaymentIntentRequest is everything the pipeline sends to the processor.
// Metadata must never contain the raw customer email; the receipt email
// travels in its own field.
type PaymentIntentRequest struct {
	Amount         int64
	Currency       string
	IdempotencyKey string
	ReceiptEmail   string
	Metadata       map[string]string
}

// PaymentIntentResult is the processor's success response.
type PaymentIntentResult struct {
	ID           string
	ClientSecret string
	Status       string
}

// PaymentProvider is the narrow port the pipeline depends on. The concrete
// Stripe implementation lives below; tests use a fake.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, req PaymentIntentRequest) (PaymentIntentResult, error)
}

// StripeService implements PaymentProvider against Stripe payment intents.
type StripeService struct {
	SecretKey  string
	WebhookKey string
}

func NewStripeService(secretKey, webhookKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{SecretKey: secretKey, WebhookKey: webhookKey}
}

func (s *StripeService) CreateIntent(ctx context.Context, req PaymentIntentRequest) (PaymentIntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(req.Currency),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(req.IdempotencyKey)
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return PaymentIntentResult{}, wrapStripeError(err)
	}

	return PaymentIntentResult{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// wrapStripeError converts Stripe SDK errors into ProviderError so callers
// can classify without importing the SDK.
func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		return &ProviderError{
			StatusCode: stripeErr.HTTPStatusCode,
			Message:    stripeErr.Msg,
		}
	}
	return err
}

// ParseWebhook verifies the signature and decodes a Stripe webhook event.
func (s *StripeService) ParseWebhook(r *http.Request) (stripe.Event, error) {
	var event stripe.Event
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		return event, err
	}
	r.Body = io.NopCloser(bytes.NewBuffer(payload))
	sigHeader := r.Header.Get("Stripe-Signature")
	return webhook.ConstructEvent(payload, sigHeader, s.WebhookKey)
}
