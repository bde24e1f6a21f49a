package services

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/amiralda/kolaboStudiosWebApp-sub000/models"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/repository"
	"github.com/amiralda/kolaboStudiosWebApp-sub000/sender"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mocks ---

type mockRetouchRepo struct {
	byID     map[uuid.UUID]*models.RetouchOrder
	byNumber map[string]*models.RetouchOrder
}

func newMockRetouchRepo() *mockRetouchRepo {
	return &mockRetouchRepo{
		byID:     make(map[uuid.UUID]*models.RetouchOrder),
		byNumber: make(map[string]*models.RetouchOrder),
	}
}

func (m *mockRetouchRepo) Create(_ context.Context, order *models.RetouchOrder) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	m.byID[order.ID] = order
	m.byNumber[order.OrderNumber] = order
	return nil
}

func (m *mockRetouchRepo) FindByID(_ context.Context, id uuid.UUID) (*models.RetouchOrder, error) {
	if o, ok := m.byID[id]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRetouchRepo) FindByOrderNumber(_ context.Context, n string) (*models.RetouchOrder, error) {
	if o, ok := m.byNumber[n]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRetouchRepo) Update(_ context.Context, order *models.RetouchOrder) error {
	m.byID[order.ID] = order
	m.byNumber[order.OrderNumber] = order
	return nil
}

var _ repository.RetouchRepository = (*mockRetouchRepo)(nil)

type mockStore struct {
	presignedUploads   []string
	presignedDownloads []string
}

func (m *mockStore) PresignUpload(_ context.Context, key, _ string, _ time.Duration) (string, map[string]string, error) {
	m.presignedUploads = append(m.presignedUploads, key)
	return "https://upload.example/" + key, map[string]string{"Content-Type": "image/jpeg"}, nil
}

func (m *mockStore) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	m.presignedDownloads = append(m.presignedDownloads, key)
	return "https://download.example/" + key, nil
}

type mockEmail struct {
	sent []string // "to|subject"
}

func (m *mockEmail) SendEmail(_ context.Context, to, subject, _ string) (sender.SendResult, error) {
	m.sent = append(m.sent, to+"|"+subject)
	return sender.SendResult{MessageID: fmt.Sprintf("m-%d", len(m.sent))}, nil
}

type mockSNS struct {
	topics   []string
	messages [][]byte
}

func (m *mockSNS) Publish(_ context.Context, topicArn string, message []byte) error {
	m.topics = append(m.topics, topicArn)
	m.messages = append(m.messages, append([]byte(nil), message...))
	return nil
}

func newRetouchFixture() (*RetouchService, *mockRetouchRepo, *mockStore, *mockEmail, *mockSNS) {
	repo := newMockRetouchRepo()
	store := &mockStore{}
	email := &mockEmail{}
	sns := &mockSNS{}
	svc := NewRetouchService(repo, store, email, sns,
		"arn:aws:sns:eu-west-2:000000000000:retouch-events",
		DefaultPricingConfig(), zap.NewNop())
	return svc, repo, store, email, sns
}

func createTestOrder(t *testing.T, svc *RetouchService, quantity int) *models.RetouchOrder {
	t.Helper()
	req := validOrder()
	req.Quantity = quantity
	order, serr := svc.CreateOrder(context.Background(), req, int64(quantity)*2500, nil)
	assert.Nil(t, serr)
	return order
}

// --- Tests ---

func TestCreateOrder_StartsAwaitingUpload(t *testing.T) {
	svc, _, _, _, _ := newRetouchFixture()

	order := createTestOrder(t, svc, 4)

	assert.Equal(t, models.RetouchStatusAwaitingUpload, order.Status)
	assert.Equal(t, "usd", order.Currency)
	assert.Contains(t, order.OrderNumber, "KS-")
	assert.Zero(t, order.UploadedCount)
}

func TestPresignUpload_AdvancesToUploadedAtQuantity(t *testing.T) {
	svc, _, store, _, _ := newRetouchFixture()
	order := createTestOrder(t, svc, 2)

	slot, serr := svc.PresignUpload(context.Background(), order.ID.String(), "IMG_0001.jpg", "image/jpeg")
	assert.Nil(t, serr)
	assert.Equal(t, "PUT", slot.Method)
	assert.Contains(t, slot.Key, order.OrderNumber)
	assert.Equal(t, models.RetouchStatusAwaitingUpload, order.Status)

	_, serr = svc.PresignUpload(context.Background(), order.ID.String(), "IMG_0002.jpg", "image/jpeg")
	assert.Nil(t, serr)
	assert.Equal(t, models.RetouchStatusUploaded, order.Status)
	assert.Len(t, store.presignedUploads, 2)

	// a third upload is rejected once the order left awaiting_upload
	_, serr = svc.PresignUpload(context.Background(), order.ID.String(), "IMG_0003.jpg", "image/jpeg")
	assert.NotNil(t, serr)
	assert.Equal(t, 409, serr.StatusCode)
}

func TestPresignUpload_RejectsBadContentType(t *testing.T) {
	svc, _, _, _, _ := newRetouchFixture()
	order := createTestOrder(t, svc, 1)

	_, serr := svc.PresignUpload(context.Background(), order.ID.String(), "malware.exe", "application/octet-stream")
	assert.NotNil(t, serr)
	assert.Equal(t, 400, serr.StatusCode)
}

func TestStartProcessing_RequiresUploaded(t *testing.T) {
	svc, _, _, _, sns := newRetouchFixture()
	order := createTestOrder(t, svc, 1)

	_, serr := svc.StartProcessing(context.Background(), order.ID.String())
	assert.NotNil(t, serr)
	assert.Equal(t, 409, serr.StatusCode)

	_, serr = svc.PresignUpload(context.Background(), order.ID.String(), "a.jpg", "image/jpeg")
	assert.Nil(t, serr)

	updated, serr := svc.StartProcessing(context.Background(), order.ID.String())
	assert.Nil(t, serr)
	assert.Equal(t, models.RetouchStatusProcessing, updated.Status)
	assert.Len(t, sns.messages, 1)
}

func TestHandleCompletionMessage_DeliversOrder(t *testing.T) {
	svc, _, store, email, sns := newRetouchFixture()
	order := createTestOrder(t, svc, 1)
	_, _ = svc.PresignUpload(context.Background(), order.ID.String(), "a.jpg", "image/jpeg")
	_, _ = svc.StartProcessing(context.Background(), order.ID.String())

	body, _ := json.Marshal(models.RetouchCompletedMessage{
		OrderNumber: order.OrderNumber,
		DeliveryKey: "retouch/" + order.OrderNumber + "/delivery/final.zip",
	})

	err := svc.HandleCompletionMessage(context.Background(), string(body))
	assert.NoError(t, err)

	assert.Equal(t, models.RetouchStatusDelivered, order.Status)
	assert.NotNil(t, order.DeliveryKey)
	assert.NotNil(t, order.DeliveredAt)
	assert.Len(t, store.presignedDownloads, 1)
	assert.Len(t, email.sent, 1)
	assert.Contains(t, email.sent[0], "ada@example.com")

	// processing event + delivered event
	assert.Len(t, sns.messages, 2)
	var evt models.RetouchEvent
	assert.NoError(t, json.Unmarshal(sns.messages[1], &evt))
	assert.Equal(t, "retouch_delivered", evt.Type)
}

func TestHandleCompletionMessage_DuplicateIsNoop(t *testing.T) {
	svc, _, _, email, _ := newRetouchFixture()
	order := createTestOrder(t, svc, 1)
	_, _ = svc.PresignUpload(context.Background(), order.ID.String(), "a.jpg", "image/jpeg")
	_, _ = svc.StartProcessing(context.Background(), order.ID.String())

	body, _ := json.Marshal(models.RetouchCompletedMessage{
		OrderNumber: order.OrderNumber,
		DeliveryKey: "k.zip",
	})

	assert.NoError(t, svc.HandleCompletionMessage(context.Background(), string(body)))
	assert.NoError(t, svc.HandleCompletionMessage(context.Background(), string(body)))
	assert.Len(t, email.sent, 1, "duplicate delivery must not re-email the customer")
}

func TestHandleCompletionMessage_MalformedAndUnknown(t *testing.T) {
	svc, _, _, _, _ := newRetouchFixture()

	// malformed bodies are dropped, not retried
	assert.NoError(t, svc.HandleCompletionMessage(context.Background(), "{not json"))
	assert.NoError(t, svc.HandleCompletionMessage(context.Background(), `{"order_number":""}`))

	// unknown orders are dropped too
	body, _ := json.Marshal(models.RetouchCompletedMessage{OrderNumber: "KS-NOPE", DeliveryKey: "k"})
	assert.NoError(t, svc.HandleCompletionMessage(context.Background(), string(body)))
}
