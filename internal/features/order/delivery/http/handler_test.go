package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-shop-backend/internal/common/config"
	"universal-shop-backend/internal/features/order/models"
	usermodels "universal-shop-backend/internal/features/user/models"
	"universal-shop-backend/internal/notifications"
)

type fakeOrderService struct {
	confirmed []int64
	rejected  []int64
	completed []int64
}

func (s *fakeOrderService) Create(ctx context.Context, buyer *usermodels.User, input models.OrderCreate) (*models.PaymentDescriptor, error) {
	return &models.PaymentDescriptor{OrderID: 1}, nil
}

func (s *fakeOrderService) ConfirmPayment(ctx context.Context, orderID int64) error {
	s.confirmed = append(s.confirmed, orderID)
	return nil
}

func (s *fakeOrderService) Complete(ctx context.Context, requester *usermodels.User, orderID int64) error {
	s.completed = append(s.completed, orderID)
	return nil
}

func (s *fakeOrderService) Reject(ctx context.Context, orderID int64) error {
	s.rejected = append(s.rejected, orderID)
	return nil
}

func (s *fakeOrderService) ListAll(ctx context.Context) ([]*models.Order, error) {
	return nil, nil
}

func setupWebhookRouter(webhookSecret string) (*gin.Engine, *fakeOrderService) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.Telegram.WebhookSecret = webhookSecret
	cfg.Telegram.AdminIDs = []int64{1}

	svc := &fakeOrderService{}
	handler := NewOrderHandler(svc, notifications.NewService(nil, 0), cfg)

	router := gin.New()
	handler.RegisterWebhooks(router.Group("/api"))
	return router, svc
}

func postJSON(router *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCryptoWebhookSuccess(t *testing.T) {
	router, svc := setupWebhookRouter("")

	w := postJSON(router, "/api/webhook/crypto", `{"status":"success","order_id":42}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Equal(t, []int64{42}, svc.confirmed)
}

func TestCryptoWebhookNonSuccess(t *testing.T) {
	router, svc := setupWebhookRouter("")

	w := postJSON(router, "/api/webhook/crypto", `{"status":"failed","order_id":42}`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.confirmed)
}

func TestCryptoWebhookMalformedPayload(t *testing.T) {
	router, svc := setupWebhookRouter("")

	// The provider is always acknowledged, even for garbage.
	w := postJSON(router, "/api/webhook/crypto", `not json`, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.Empty(t, svc.confirmed)
}

func TestTelegramWebhookSecretMismatch(t *testing.T) {
	router, svc := setupWebhookRouter("s3cret")

	w := postJSON(router, "/api/webhook/telegram", `{"update_id":1}`, map[string]string{
		"X-Telegram-Bot-Api-Secret-Token": "wrong",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, svc.confirmed)
}

func TestTelegramWebhookConfirmCallback(t *testing.T) {
	router, svc := setupWebhookRouter("s3cret")

	body := `{"update_id":1,"callback_query":{"id":"cb1","from":{"id":1,"is_bot":false,"first_name":"Op"},"chat_instance":"ci","data":"confirm_42"}}`
	w := postJSON(router, "/api/webhook/telegram", body, map[string]string{
		"X-Telegram-Bot-Api-Secret-Token": "s3cret",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	assert.Equal(t, []int64{42}, svc.confirmed)
	assert.Empty(t, svc.rejected)
}

func TestTelegramWebhookRejectCallback(t *testing.T) {
	router, svc := setupWebhookRouter("")

	body := `{"update_id":1,"callback_query":{"id":"cb2","from":{"id":1,"is_bot":false,"first_name":"Op"},"chat_instance":"ci","data":"reject_7"}}`
	w := postJSON(router, "/api/webhook/telegram", body, nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{7}, svc.rejected)
	assert.Empty(t, svc.confirmed)
}

func TestTelegramWebhookNonAdminCallback(t *testing.T) {
	router, svc := setupWebhookRouter("")

	body := `{"update_id":1,"callback_query":{"id":"cb4","from":{"id":999,"is_bot":false,"first_name":"Stranger"},"chat_instance":"ci","data":"confirm_42"}}`
	w := postJSON(router, "/api/webhook/telegram", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.confirmed)
	assert.Empty(t, svc.rejected)
}

func TestTelegramWebhookUnknownCallbackData(t *testing.T) {
	router, svc := setupWebhookRouter("")

	body := `{"update_id":1,"callback_query":{"id":"cb3","from":{"id":1,"is_bot":false,"first_name":"Op"},"chat_instance":"ci","data":"approve_7"}}`
	w := postJSON(router, "/api/webhook/telegram", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.confirmed)
	assert.Empty(t, svc.rejected)
}

func TestTelegramWebhookPlainMessageIgnored(t *testing.T) {
	router, svc := setupWebhookRouter("")

	body := `{"update_id":1,"message":{"message_id":5,"chat":{"id":1,"type":"private"},"text":"hello"}}`
	w := postJSON(router, "/api/webhook/telegram", body, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, svc.confirmed)
	assert.Empty(t, svc.rejected)
}
