package handler

import (
	"net/http/httptest"
	"testing"

	"faq-chatbot-be/internal/pkg/logger"
	internalWS "faq-chatbot-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeWsRequiresUpgrade(t *testing.T) {
	hub := internalWS.NewHub(nil, nil, "a", logger.NewNopLogger())
	app := fiber.New()
	NewChatWsHandler(hub, logger.NewNopLogger()).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/ws/chat?user_id=u1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
