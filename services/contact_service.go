package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/ratelimit"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/sender"

	"go.uber.org/zap"
)

// Contact form throttle: 3 submissions per 15 minutes per identity.
const (
	contactMaxRequests = 3
	contactWindow      = 15 * time.Minute
)

// ContactService persists contact form submissions and notifies the studio
// inbox. The notification email is best-effort; the stored row is the
// source of truth.
type ContactService struct {
	repo        repository.ContactRepository
	validator   *RequestValidator
	limiter     *ratelimit.Limiter
	email       sender.EmailSender
	studioEmail string
	logger      *zap.Logger
}

func NewContactService(
	repo repository.ContactRepository,
	validator *RequestValidator,
	limiter *ratelimit.Limiter,
	email sender.EmailSender,
	studioEmail string,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		repo:        repo,
		validator:   validator,
		limiter:     limiter,
		email:       email,
		studioEmail: studioEmail,
		logger:      logger,
	}
}

// Submit validates, throttles, stores and forwards a contact message.
func (s *ContactService) Submit(ctx context.Context, req *models.ContactRequest, clientIP string) *PaymentError {
	if violations := s.validator.ValidateContact(req); violations != nil {
		return validationError(violations)
	}

	limitKey := "contact:" + EmailHash(req.Email) + ":" + clientIP
	if !s.limiter.CheckAndConsume(limitKey, contactMaxRequests, contactWindow) {
		return &PaymentError{
			Kind:    ErrKindRateLimited,
			Message: "Too many messages. Please wait before sending another.",
		}
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		s.logger.Error("Failed to store contact message", zap.Error(err))
		return &PaymentError{Kind: ErrKindUnknown, Message: err.Error()}
	}

	s.notifyStudio(ctx, msg)
	return nil
}

func (s *ContactService) notifyStudio(ctx context.Context, msg *models.ContactMessage) {
	subject := "New contact form message"
	if msg.Subject != "" {
		subject = "Contact form: " + msg.Subject
	}
	body := fmt.Sprintf(
		"<p><strong>From:</strong> %s &lt;%s&gt;</p><p>%s</p>",
		html.EscapeString(msg.Name),
		html.EscapeString(msg.Email),
		html.EscapeString(msg.Message),
	)

	if _, err := s.email.SendEmail(ctx, s.studioEmail, subject, body); err != nil {
		// message row already persisted; log and move on
		s.logger.Warn("Failed to send contact notification", zap.Error(err))
		return
	}

	if err := s.repo.MarkNotified(ctx, msg.ID); err != nil {
		s.logger.Warn("Failed to mark contact message notified", zap.Error(err))
	}
}
