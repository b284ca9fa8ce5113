package controller

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/pkg/testdb"
	"faq-chatbot-be/internal/repository/unitofwork"
	"faq-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	jwtSecret  = "controller-secret"
	lineSecret = "line-secret"
)

type recordingResponder struct {
	mu    sync.Mutex
	users []string
}

func (r *recordingResponder) Respond(ctx context.Context, userID, text string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	return "re: " + text
}

type recordingReplier struct {
	tokens []string
	texts  []string
}

func (r *recordingReplier) ReplyText(replyToken, text string) error {
	r.tokens = append(r.tokens, replyToken)
	r.texts = append(r.texts, text)
	return nil
}

type fixture struct {
	app       *fiber.App
	responder *recordingResponder
	replier   *recordingReplier
	token     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	factory := unitofwork.NewRepositoryFactory(testdb.Open(t))
	nop := logger.NewNopLogger()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fixture{responder: &recordingResponder{}, replier: &recordingReplier{}}
	chatbot := service.NewChatbotService(f.responder)
	auth := service.NewAuthService("admin", string(hash), jwtSecret, time.Hour)

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	guard := []fiber.Handler{serverutils.JwtMiddleware(jwtSecret), serverutils.RequireRole(serverutils.RoleAdmin)}

	NewChatbotController(chatbot).RegisterRoutes(api)
	NewAuthController(auth).RegisterRoutes(api)
	NewFaqController(service.NewFaqService(factory, time.Hour, nil, "test", nop)).RegisterRoutes(api, guard...)
	NewAdminController(service.NewAdminService(factory, nop)).RegisterRoutes(api, guard...)
	NewLineController(lineSecret, chatbot, f.replier, nop).RegisterRoutes(api)
	f.app = app

	res, err := auth.LoginAdmin(context.Background(), &dto.AdminLoginRequest{Username: "admin", Password: "pw"})
	require.NoError(t, err)
	f.token = res.AccessToken
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}, authorized bool) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func TestSendChat(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, "POST", "/api/chat", map[string]string{"user_id": "u1", "message": "駐車場"}, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "re: 駐車場", data["response"])
	assert.Equal(t, "u1", data["user_id"])

	// Anonymous callers get an IP-derived id.
	resp, body = f.do(t, "POST", "/api/chat", map[string]string{"message": "こんにちは"}, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["data"].(map[string]interface{})["user_id"])

	resp, _ = f.do(t, "POST", "/api/chat", map[string]string{"user_id": "u1"}, false)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminLogin(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, "POST", "/api/auth/admin/login", map[string]string{"username": "admin", "password": "pw"}, false)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["data"].(map[string]interface{})["access_token"])

	resp, _ = f.do(t, "POST", "/api/auth/admin/login", map[string]string{"username": "admin", "password": "bad"}, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestFaqAdminFlow(t *testing.T) {
	f := newFixture(t)

	resp, _ := f.do(t, "GET", "/api/admin/faq", nil, false)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := f.do(t, "POST", "/api/admin/faq", map[string]string{"question": "駐車場", "answer": "ありません"}, true)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	id := body["data"].(map[string]interface{})["id"].(float64)
	assert.Positive(t, id)

	resp, _ = f.do(t, "POST", "/api/admin/faq", map[string]string{"question": "駐車場", "answer": "dup"}, true)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, _ = f.do(t, "POST", "/api/admin/faq", map[string]string{"question": "駐車場"}, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = f.do(t, "GET", "/api/admin/faq?q=%E9%A7%90%E8%BB%8A", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["total"])

	resp, _ = f.do(t, "PUT", "/api/admin/faq/1", map[string]string{"question": "駐車場", "answer": "第2駐車場"}, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = f.do(t, "POST", "/api/admin/faq/import", []map[string]string{
		{"question": "駐車場", "answer": "第3駐車場"},
		{"question": "試合会場", "answer": "市民球場です"},
	}, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["data"].(map[string]interface{})["created"])

	resp, _ = f.do(t, "GET", "/api/admin/faq/abc", nil, true)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = f.do(t, "DELETE", "/api/admin/faq/1", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = f.do(t, "GET", "/api/admin/faq/1", nil, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminLogs(t *testing.T) {
	f := newFixture(t)

	resp, body := f.do(t, "GET", "/api/admin/chat-logs?needs_human=true", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["data"].(map[string]interface{})["total"])

	resp, body = f.do(t, "GET", "/api/admin/chat-logs/stats", nil, true)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body["data"], "unsupported")

	resp, _ = f.do(t, "GET", "/api/admin/system-logs", nil, true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = f.do(t, "GET", "/api/admin/system-logs/nope", nil, true)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func lineRequest(t *testing.T, body []byte, secret string) *http.Request {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	req := httptest.NewRequest("POST", "/api/line/webhook", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Line-Signature", base64.StdEncoding.EncodeToString(mac.Sum(nil)))
	return req
}

const lineBody = `{
  "destination": "Ubot",
  "events": [
    {
      "type": "message",
      "mode": "active",
      "timestamp": 1714550400000,
      "webhookEventId": "01HX",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "reply-1",
      "source": {"type": "user", "userId": "U123"},
      "message": {"type": "text", "id": "1", "quoteToken": "q", "text": "駐車場"}
    },
    {
      "type": "follow",
      "mode": "active",
      "timestamp": 1714550400000,
      "webhookEventId": "01HY",
      "deliveryContext": {"isRedelivery": false},
      "replyToken": "reply-2",
      "source": {"type": "user", "userId": "U123"},
      "follow": {"isUnblocked": false}
    }
  ]
}`

func TestLineWebhook(t *testing.T) {
	f := newFixture(t)

	resp, err := f.app.Test(lineRequest(t, []byte(lineBody), lineSecret), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, []string{"line:U123"}, f.responder.users)
	assert.Equal(t, []string{"reply-1"}, f.replier.tokens)
	assert.Equal(t, []string{"re: 駐車場"}, f.replier.texts)
}

func TestLineWebhookRejectsBadSignature(t *testing.T) {
	f := newFixture(t)

	resp, err := f.app.Test(lineRequest(t, []byte(lineBody), "wrong"), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, f.replier.tokens)
}
