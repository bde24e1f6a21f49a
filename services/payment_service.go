package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/ratelimit"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"

	"go.uber.org/zap"
)

// Rate-limit defaults: 5 submissions per 5 minutes per customer identity.
const (
	DefaultMaxRequests     = 5
	DefaultRateLimitWindow = 5 * time.Minute
	defaultProviderTimeout = 8 * time.Second
)

// PaymentService runs the order pipeline: validate, throttle, price,
// short-circuit on sentinel amounts, then create the payment intent.
type PaymentService struct {
	pricing   PricingConfig
	validator *RequestValidator
	limiter   *ratelimit.Limiter
	provider  PaymentProvider
	repo      repository.PaymentRepository
	logger    *zap.Logger

	maxRequests     int
	window          time.Duration
	providerTimeout time.Duration
}

func NewPaymentService(
	pricing PricingConfig,
	validator *RequestValidator,
	limiter *ratelimit.Limiter,
	provider PaymentProvider,
	repo repository.PaymentRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		pricing:         pricing,
		validator:       validator,
		limiter:         limiter,
		provider:        provider,
		repo:            repo,
		logger:          logger,
		maxRequests:     DefaultMaxRequests,
		window:          DefaultRateLimitWindow,
		providerTimeout: defaultProviderTimeout,
	}
}

// CreatePaymentIntent drives the whole pipeline. Every terminal state is an
// explicit *PaymentError kind; nothing from the provider SDK escapes raw.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, req *models.OrderRequest, clientIP string) (*models.PaymentIntentResponse, *PaymentError) {
	if violations := s.validator.ValidateOrder(req); violations != nil {
		return nil, validationError(violations)
	}

	emailHash := EmailHash(req.CustomerInfo.Email)
	limitKey := emailHash + ":" + clientIP
	if !s.limiter.CheckAndConsume(limitKey, s.maxRequests, s.window) {
		return nil, &PaymentError{
			Kind:    ErrKindRateLimited,
			Message: "Too many requests. Please wait a few minutes before trying again.",
		}
	}

	amount := s.pricing.CalculateAmount(req.ServiceID, req.Quantity, req.RushDelivery)
	if amount == 0 {
		return nil, &PaymentError{
			Kind:    ErrKindCustomPricing,
			Message: "This service requires a custom quote. Please contact us for pricing.",
		}
	}
	if amount > s.pricing.MaxAmount {
		return nil, &PaymentError{
			Kind:    ErrKindAmountLimit,
			Message: "Order total exceeds the maximum we can process online. Please contact us.",
		}
	}

	intentReq := PaymentIntentRequest{
		Amount:         amount,
		Currency:       s.pricing.Currency,
		IdempotencyKey: IdempotencyKey(req.CustomerInfo.Email, req.ServiceID, req.Quantity, req.RushDelivery),
		ReceiptEmail:   req.CustomerInfo.Email,
		Metadata: map[string]string{
			"service_id":    req.ServiceID,
			"quantity":      strconv.Itoa(req.Quantity),
			"rush_delivery": strconv.FormatBool(req.RushDelivery),
			"customer_hash": emailHash,
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	result, err := s.provider.CreateIntent(callCtx, intentReq)
	if err != nil {
		return nil, s.classifyProviderError(err, emailHash)
	}

	s.persistPayment(ctx, req, amount, emailHash, intentReq.IdempotencyKey, result)

	return &models.PaymentIntentResponse{
		ClientSecret:    result.ClientSecret,
		PaymentIntentID: result.ID,
		Amount:          amount,
		Currency:        s.pricing.Currency,
	}, nil
}

// persistPayment records the pending payment. The intent already exists at
// the processor, so a storage failure is logged rather than failing the
// request; the webhook reconciles the row later.
func (s *PaymentService) persistPayment(ctx context.Context, req *models.OrderRequest, amount int64, emailHash, idemKey string, result PaymentIntentResult) {
	if s.repo == nil {
		return
	}

	stripeID := result.ID
	payment := &models.Payment{
		ServiceID:         req.ServiceID,
		Quantity:          req.Quantity,
		RushDelivery:      req.RushDelivery,
		Amount:            amount,
		Currency:          s.pricing.Currency,
		Status:            models.PaymentStatusPending,
		CustomerName:      req.CustomerInfo.Name,
		CustomerEmail:     req.CustomerInfo.Email,
		CustomerEmailHash: emailHash,
		StripePaymentID:   &stripeID,
		IdempotencyKey:    idemKey,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to persist payment record",
			zap.String("payment_intent_id", result.ID),
			zap.Error(err),
		)
	}
}

func (s *PaymentService) classifyProviderError(err error, emailHash string) *PaymentError {
	var provErr *ProviderError
	if errors.As(err, &provErr) && provErr.StatusCode >= 400 && provErr.StatusCode < 500 {
		s.logger.Warn("Payment processor rejected request",
			zap.Int("status", provErr.StatusCode),
			zap.String("customer_hash", emailHash),
		)
		return &PaymentError{
			Kind:    ErrKindPaymentProcessor,
			Message: provErr.Message,
		}
	}

	// Connection failures, timeouts and 5xx responses: full detail stays
	// server-side, the client gets a generic retryable message.
	s.logger.Error("Payment intent creation failed",
		zap.String("customer_hash", emailHash),
		zap.Error(err),
	)
	return &PaymentError{
		Kind:    ErrKindUnknown,
		Message: fmt.Sprintf("payment intent creation failed: %v", err),
	}
}
