package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/sender"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	uploadURLExpiry   = 15 * time.Minute
	downloadURLExpiry = 7 * 24 * time.Hour
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/tiff": true,
	"image/webp": true,
}

// ObjectStore is the narrow S3 surface the retouch workflow needs.
type ObjectStore interface {
	PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, map[string]string, error)
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UploadSlot is one presigned PUT the customer uses to send a photo.
type UploadSlot struct {
	UploadURL string            `json:"upload_url"`
	Method    string            `json:"method"`
	Key       string            `json:"key"`
	Headers   map[string]string `json:"headers,omitempty"`
	ExpiresIn int64             `json:"expires_in"`
}

// RetouchService owns the upload -> process -> deliver workflow for paid
// retouching jobs.
type RetouchService struct {
	repo        repository.RetouchRepository
	store       ObjectStore
	email       sender.EmailSender
	sns         SNSPublisher
	snsTopicArn string
	pricing     PricingConfig
	logger      *zap.Logger
}

// SNSPublisher matches pkg/aws.SNSPublisher without importing the SDK here.
type SNSPublisher interface {
	Publish(ctx context.Context, topicArn string, message []byte) error
}

func NewRetouchService(
	repo repository.RetouchRepository,
	store ObjectStore,
	email sender.EmailSender,
	sns SNSPublisher,
	snsTopicArn string,
	pricing PricingConfig,
	logger *zap.Logger,
) *RetouchService {
	return &RetouchService{
		repo:        repo,
		store:       store,
		email:       email,
		sns:         sns,
		snsTopicArn: snsTopicArn,
		pricing:     pricing,
		logger:      logger,
	}
}

// CreateOrder records a paid retouching job awaiting its photo uploads.
func (s *RetouchService) CreateOrder(ctx context.Context, req *models.OrderRequest, amount int64, paymentID *uuid.UUID) (*models.RetouchOrder, *ServiceError) {
	order := &models.RetouchOrder{
		OrderNumber:   newOrderNumber(),
		ServiceID:     req.ServiceID,
		Quantity:      req.Quantity,
		RushDelivery:  req.RushDelivery,
		Amount:        amount,
		Currency:      s.pricing.Currency,
		Status:        models.RetouchStatusAwaitingUpload,
		CustomerName:  req.CustomerInfo.Name,
		CustomerEmail: req.CustomerInfo.Email,
		PaymentID:     paymentID,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error("Failed to create retouch order", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create order"}
	}

	return order, nil
}

// PresignUpload hands out one upload slot for the next photo. When the
// declared quantity has been presigned, the order advances to uploaded.
func (s *RetouchService) PresignUpload(ctx context.Context, orderID, filename, contentType string) (*UploadSlot, *ServiceError) {
	if s.store == nil {
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "Uploads are temporarily unavailable"}
	}
	if !allowedUploadTypes[contentType] {
		return nil, &ServiceError{
			StatusCode: http.StatusBadRequest,
			Message:    "Unsupported content type. Allowed: jpeg, png, tiff, webp",
		}
	}

	order, serr := s.findByID(ctx, orderID)
	if serr != nil {
		return nil, serr
	}

	if order.Status != models.RetouchStatusAwaitingUpload {
		return nil, &ServiceError{
			StatusCode: http.StatusConflict,
			Message:    fmt.Sprintf("order %s is not accepting uploads (status %q)", order.OrderNumber, order.Status),
		}
	}

	key := uploadKey(order.OrderNumber, order.UploadedCount+1, filename)
	url, headers, err := s.store.PresignUpload(ctx, key, contentType, uploadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to generate upload URL"}
	}

	order.UploadedCount++
	if order.UploadedCount >= order.Quantity {
		order.Status = models.RetouchStatusUploaded
	}
	if err := s.repo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update retouch order", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update order"}
	}

	return &UploadSlot{
		UploadURL: url,
		Method:    "PUT",
		Key:       key,
		Headers:   headers,
		ExpiresIn: int64(uploadURLExpiry.Seconds()),
	}, nil
}

// StartProcessing moves an uploaded order onto the retouching queue.
func (s *RetouchService) StartProcessing(ctx context.Context, orderID string) (*models.RetouchOrder, *ServiceError) {
	order, serr := s.findByID(ctx, orderID)
	if serr != nil {
		return nil, serr
	}

	if order.Status != models.RetouchStatusUploaded {
		return nil, &ServiceError{
			StatusCode: http.StatusConflict,
			Message:    fmt.Sprintf("order %s cannot start processing from status %q", order.OrderNumber, order.Status),
		}
	}

	order.Status = models.RetouchStatusProcessing
	if err := s.repo.Update(ctx, order); err != nil {
		s.logger.Error("Failed to update retouch order", zap.String("order", order.OrderNumber), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update order"}
	}

	s.publishEvent(ctx, order, "retouch_processing")
	return order, nil
}

// HandleCompletionMessage consumes one SQS message from the retouching
// workers and delivers the finished order: status flip, download link email,
// SNS event. Returning an error leaves the message on the queue for retry.
func (s *RetouchService) HandleCompletionMessage(ctx context.Context, body string) error {
	var msg models.RetouchCompletedMessage
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		s.logger.Warn("Dropping malformed completion message", zap.Error(err))
		return nil // unparseable: retrying will not help
	}
	if msg.OrderNumber == "" || msg.DeliveryKey == "" {
		s.logger.Warn("Dropping incomplete completion message", zap.String("body", body))
		return nil
	}

	order, err := s.repo.FindByOrderNumber(ctx, msg.OrderNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			s.logger.Warn("Completion message for unknown order", zap.String("order", msg.OrderNumber))
			return nil
		}
		return fmt.Errorf("load order %s: %w", msg.OrderNumber, err)
	}

	if order.Status == models.RetouchStatusDelivered {
		return nil // duplicate delivery message
	}
	if order.Status != models.RetouchStatusProcessing && order.Status != models.RetouchStatusUploaded {
		s.logger.Warn("Completion message for order in unexpected status",
			zap.String("order", order.OrderNumber),
			zap.String("status", order.Status),
		)
		return nil
	}

	now := time.Now().UTC()
	order.Status = models.RetouchStatusDelivered
	order.DeliveryKey = &msg.DeliveryKey
	order.DeliveredAt = &now
	if err := s.repo.Update(ctx, order); err != nil {
		return fmt.Errorf("mark order %s delivered: %w", order.OrderNumber, err)
	}

	s.sendDeliveryNotice(ctx, order, msg.DeliveryKey)
	s.publishEvent(ctx, order, "retouch_delivered")
	return nil
}

func (s *RetouchService) sendDeliveryNotice(ctx context.Context, order *models.RetouchOrder, deliveryKey string) {
	link, err := s.store.PresignDownload(ctx, deliveryKey, downloadURLExpiry)
	if err != nil {
		s.logger.Error("Failed to presign delivery download",
			zap.String("order", order.OrderNumber), zap.Error(err))
		return
	}

	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your retouched photos for order %s are ready.</p><p><a href=%q>Download your photos</a> (link valid for 7 days).</p>",
		html.EscapeString(order.CustomerName),
		order.OrderNumber,
		link,
	)
	if _, err := s.email.SendEmail(ctx, order.CustomerEmail, "Your photos are ready", body); err != nil {
		s.logger.Warn("Failed to send delivery notice",
			zap.String("order", order.OrderNumber), zap.Error(err))
	}
}

func (s *RetouchService) publishEvent(ctx context.Context, order *models.RetouchOrder, eventType string) {
	if s.sns == nil {
		return
	}
	payload, _ := json.Marshal(models.RetouchEvent{
		Type:        eventType,
		OrderNumber: order.OrderNumber,
		ServiceID:   order.ServiceID,
		Status:      order.Status,
		Timestamp:   time.Now().UTC(),
	})
	if err := s.sns.Publish(ctx, s.snsTopicArn, payload); err != nil {
		s.logger.Error("Failed to publish retouch event",
			zap.String("order", order.OrderNumber),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func (s *RetouchService) findByID(ctx context.Context, orderID string) (*models.RetouchOrder, *ServiceError) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid order id"}
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
		}
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load order"}
	}
	return order, nil
}

// GetOrder returns an order by its public order number.
func (s *RetouchService) GetOrder(ctx context.Context, orderNumber string) (*models.RetouchOrder, *ServiceError) {
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
		}
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load order"}
	}
	return order, nil
}

func newOrderNumber() string {
	id := uuid.New().String()
	return "KS-" + strings.ToUpper(id[:8])
}

func uploadKey(orderNumber string, seq int, filename string) string {
	base := path.Base(filename)
	if base == "." || base == "/" || base == "" {
		base = "photo"
	}
	return fmt.Sprintf("retouch/%s/uploads/%03d-%s", orderNumber, seq, base)
}
