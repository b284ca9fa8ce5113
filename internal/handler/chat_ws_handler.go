package handler

import (
	"faq-chatbot-be/internal/pkg/logger"
	internalWS "faq-chatbot-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const maxUserIdLength = 255

type ChatWsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewChatWsHandler(hub *internalWS.Hub, log logger.ILogger) *ChatWsHandler {
	return &ChatWsHandler{hub: hub, logger: log}
}

// ServeWs upgrades to a chat socket. Without user_id a fresh id is issued
// and announced in the first "session" frame.
func (h *ChatWsHandler) ServeWs(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID := c.Query("user_id")
	if len(userID) > maxUserIdLength {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is too long")
	}
	if userID == "" {
		userID = "ws:" + uuid.New().String()
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("ChatWsHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
		internalWS.ServeWs(h.hub, conn, userID)
		h.logger.Info("ChatWsHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
	})(c)
}

func (h *ChatWsHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/chat", h.ServeWs)
}
