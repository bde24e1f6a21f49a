package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/controllers"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/sender"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"
)

// ---- mocks ----

type mockPayments struct {
	resp *models.PaymentIntentResponse
	perr *services.PaymentError
}

func (m *mockPayments) CreatePaymentIntent(ctx context.Context, req *models.OrderRequest, clientIP string) (*models.PaymentIntentResponse, *services.PaymentError) {
	if m.perr != nil {
		return nil, m.perr
	}
	return m.resp, nil
}

type mockParser struct {
	event stripe.Event
	err   error
}

func (m *mockParser) ParseWebhook(r *http.Request) (stripe.Event, error) {
	return m.event, m.err
}

type mockPaymentRepo struct {
	payment *models.Payment
	findErr error
	updates map[string]interface{}
}

func (m *mockPaymentRepo) Create(ctx context.Context, p *models.Payment) error { return nil }

func (m *mockPaymentRepo) FindByStripePaymentID(ctx context.Context, id string) (*models.Payment, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	return m.payment, nil
}

func (m *mockPaymentRepo) UpdateByStripePaymentID(ctx context.Context, id string, updates map[string]interface{}) error {
	m.updates = updates
	return nil
}

type mockPublisher struct {
	topics   []string
	messages [][]byte
}

func (m *mockPublisher) Publish(ctx context.Context, topicArn string, message []byte) error {
	m.topics = append(m.topics, topicArn)
	m.messages = append(m.messages, message)
	return nil
}

type stubSender struct {
	to       []string
	subjects []string
}

func (s *stubSender) SendEmail(ctx context.Context, to, subject, body string) (sender.SendResult, error) {
	s.to = append(s.to, to)
	s.subjects = append(s.subjects, subject)
	return sender.SendResult{MessageID: "test"}, nil
}

// ---- helpers ----

func paymentRouter(pc *controllers.PaymentController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/payment-intents", pc.CreatePaymentIntent)
	r.POST("/stripe/webhook", pc.StripeWebhook)
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func orderBody() map[string]interface{} {
	return map[string]interface{}{
		"serviceId": "standard-retouch",
		"quantity":  2,
		"customerInfo": map[string]interface{}{
			"name":  "Ada Kolabo",
			"email": "ada@example.com",
		},
	}
}

// ---- create intent ----

func TestCreatePaymentIntent_Success(t *testing.T) {
	svc := &mockPayments{resp: &models.PaymentIntentResponse{
		ClientSecret:    "pi_123_secret_456",
		PaymentIntentID: "pi_123",
		Amount:          5000,
		Currency:        "usd",
	}}
	pc := controllers.NewPaymentController(svc, &mockParser{}, &mockPaymentRepo{}, nil, nil, "", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/payment-intents", orderBody())

	assert.Equal(t, http.StatusOK, w.Code)
	var resp models.PaymentIntentResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pi_123_secret_456", resp.ClientSecret)
	assert.Equal(t, int64(5000), resp.Amount)
}

func TestCreatePaymentIntent_ValidationDetails(t *testing.T) {
	svc := &mockPayments{perr: &services.PaymentError{
		Kind:    services.ErrKindValidation,
		Message: "Invalid order request",
		Details: []models.FieldError{
			{Field: "quantity", Message: "must be at least 1"},
			{Field: "customerInfo.email", Message: "must be a valid email address"},
		},
	}}
	pc := controllers.NewPaymentController(svc, &mockParser{}, &mockPaymentRepo{}, nil, nil, "", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/payment-intents", orderBody())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Error   string              `json:"error"`
		Details []models.FieldError `json:"details"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Details, 2)
}

func TestCreatePaymentIntent_RateLimited(t *testing.T) {
	svc := &mockPayments{perr: &services.PaymentError{
		Kind:    services.ErrKindRateLimited,
		Message: "Too many payment attempts. Please try again later.",
	}}
	pc := controllers.NewPaymentController(svc, &mockParser{}, &mockPaymentRepo{}, nil, nil, "", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/payment-intents", orderBody())

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCreatePaymentIntent_UnknownErrorIsGeneric(t *testing.T) {
	svc := &mockPayments{perr: &services.PaymentError{
		Kind:    services.ErrKindUnknown,
		Message: "dial tcp: connection refused",
	}}
	pc := controllers.NewPaymentController(svc, &mockParser{}, &mockPaymentRepo{}, nil, nil, "", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/payment-intents", orderBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
	assert.Contains(t, w.Body.String(), "Internal server error")
}

func TestCreatePaymentIntent_MalformedBody(t *testing.T) {
	pc := controllers.NewPaymentController(&mockPayments{}, &mockParser{}, &mockPaymentRepo{}, nil, nil, "", zap.NewNop())
	r := paymentRouter(pc)

	req := httptest.NewRequest(http.MethodPost, "/payment-intents", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- webhook ----

func webhookEvent(t *testing.T, eventType, intentID string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]interface{}{"id": intentID})
	assert.NoError(t, err)
	return stripe.Event{
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestStripeWebhook_SucceededUpdatesAndPublishes(t *testing.T) {
	repo := &mockPaymentRepo{payment: &models.Payment{
		ID:                uuid.New(),
		ServiceID:         "standard-retouch",
		Quantity:          2,
		Amount:            5000,
		Currency:          "usd",
		Status:            models.PaymentStatusPending,
		CustomerName:      "Ada Kolabo",
		CustomerEmail:     "ada@example.com",
		CustomerEmailHash: "a1b2c3d4e5f60718",
	}}
	pub := &mockPublisher{}
	mail := &stubSender{}
	pc := controllers.NewPaymentController(&mockPayments{}, &mockParser{
		event: webhookEvent(t, "payment_intent.succeeded", "pi_123"),
	}, repo, pub, mail, "arn:aws:sns:us-east-1:000000000000:payments", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/stripe/webhook", map[string]string{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PaymentStatusSucceeded, repo.updates["status"])
	assert.Contains(t, repo.updates, "succeeded_at")

	assert.Len(t, pub.messages, 1)
	var evt models.PaymentEvent
	assert.NoError(t, json.Unmarshal(pub.messages[0], &evt))
	assert.Equal(t, "payment_succeeded", evt.Type)
	assert.NotContains(t, string(pub.messages[0]), "@")

	assert.Equal(t, []string{"ada@example.com"}, mail.to)
}

func TestStripeWebhook_AlreadyFinalIsNoop(t *testing.T) {
	repo := &mockPaymentRepo{payment: &models.Payment{
		ID:     uuid.New(),
		Status: models.PaymentStatusSucceeded,
	}}
	pub := &mockPublisher{}
	pc := controllers.NewPaymentController(&mockPayments{}, &mockParser{
		event: webhookEvent(t, "payment_intent.succeeded", "pi_123"),
	}, repo, pub, nil, "arn:aws:sns:us-east-1:000000000000:payments", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/stripe/webhook", map[string]string{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, repo.updates)
	assert.Empty(t, pub.messages)
}

func TestStripeWebhook_InvalidSignature(t *testing.T) {
	pc := controllers.NewPaymentController(&mockPayments{}, &mockParser{
		err: assert.AnError,
	}, &mockPaymentRepo{}, nil, nil, "", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/stripe/webhook", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhook_FailedSetsFailedAt(t *testing.T) {
	repo := &mockPaymentRepo{payment: &models.Payment{
		ID:     uuid.New(),
		Status: models.PaymentStatusPending,
	}}
	pc := controllers.NewPaymentController(&mockPayments{}, &mockParser{
		event: webhookEvent(t, "payment_intent.payment_failed", "pi_456"),
	}, repo, &mockPublisher{}, nil, "arn:topic", zap.NewNop())
	r := paymentRouter(pc)

	w := postJSON(r, "/stripe/webhook", map[string]string{})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PaymentStatusFailed, repo.updates["status"])
	assert.Contains(t, repo.updates, "failed_at")
}
