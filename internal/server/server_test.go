package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"faq-chatbot-be/internal/bootstrap"
	"faq-chatbot-be/internal/config"
	"faq-chatbot-be/internal/constant"
	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/testdb"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *bootstrap.Container) {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Port:               "0",
			CorsAllowedOrigins: "*",
			JwtSecret:          "server-secret",
		},
		Chatbot: config.ChatbotConfig{
			StateStore:       constant.StateStoreMemory,
			FaqReadTimeout:   time.Second,
			CorpusCacheTTL:   time.Minute,
			ChatLogTopic:     "CHAT_LOG_APPEND",
			WebSocketLogPath: filepath.Join(t.TempDir(), "ws.log"),
		},
		Admin: config.AdminConfig{Username: "admin", TokenTTL: time.Hour},
	}

	container := bootstrap.NewContainer(testdb.Open(t), cfg, bootstrap.Options{Logger: logger.NewNopLogger()})
	t.Cleanup(container.Close)

	return New(cfg, container), container
}

func post(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &decoded)
	return resp, decoded
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/healthz", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestChatAnswersFromStoredFaq(t *testing.T) {
	srv, container := newTestServer(t)

	_, err := container.FaqService.Create(context.Background(), &dto.FaqRequest{
		Question: "駐車場",
		Answer:   "球場に50台分の駐車場があります。",
	})
	require.NoError(t, err)

	resp, body := post(t, srv.GetApp(), "/api/chat", map[string]string{"user_id": "u1", "message": "駐車場はありますか"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]interface{})
	assert.Contains(t, data["response"], "球場に50台分の駐車場があります。")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/admin/faq", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest("GET", "/api/admin/chat-logs", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLineRouteDisabledWithoutCredentials(t *testing.T) {
	srv, container := newTestServer(t)
	require.Nil(t, container.LineController)

	resp, _ := post(t, srv.GetApp(), "/api/line/webhook", map[string]interface{}{"events": []interface{}{}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
