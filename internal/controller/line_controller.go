package controller

import (
	"encoding/json"

	"faq-chatbot-be/internal/pkg/lineclient"
	"faq-chatbot-be/internal/pkg/logger"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/line/line-bot-sdk-go/v8/linebot/webhook"
)

// lineUserPrefix keeps LINE ids apart from web user ids in the state store
const lineUserPrefix = "line:"

type ILineController interface {
	RegisterRoutes(r fiber.Router)
	Webhook(ctx *fiber.Ctx) error
}

type lineController struct {
	channelSecret string
	chatbot       service.IChatbotService
	replier       lineclient.IReplier
	logger        logger.ILogger
}

func NewLineController(channelSecret string, chatbot service.IChatbotService, replier lineclient.IReplier, log logger.ILogger) ILineController {
	return &lineController{
		channelSecret: channelSecret,
		chatbot:       chatbot,
		replier:       replier,
		logger:        log,
	}
}

func (c *lineController) RegisterRoutes(r fiber.Router) {
	r.Post("/line/webhook", c.Webhook)
}

// sourceUserId returns the sender for 1:1, group and room chats
func sourceUserId(source webhook.SourceInterface) string {
	switch s := source.(type) {
	case webhook.UserSource:
		return s.UserId
	case webhook.GroupSource:
		return s.UserId
	case webhook.RoomSource:
		return s.UserId
	default:
		return ""
	}
}

func (c *lineController) Webhook(ctx *fiber.Ctx) error {
	body := ctx.Body()
	if !webhook.ValidateSignature(c.channelSecret, ctx.Get("X-Line-Signature"), body) {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid signature"))
	}

	var cb webhook.CallbackRequest
	if err := json.Unmarshal(body, &cb); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid webhook body"))
	}

	for _, event := range cb.Events {
		e, ok := event.(webhook.MessageEvent)
		if !ok {
			continue
		}
		text, ok := e.Message.(webhook.TextMessageContent)
		if !ok {
			continue
		}
		userId := sourceUserId(e.Source)
		if userId == "" {
			continue
		}

		reply := c.chatbot.Reply(ctx.UserContext(), lineUserPrefix+userId, text.Text)
		if err := c.replier.ReplyText(e.ReplyToken, reply); err != nil {
			c.logger.Error("LineController", "Failed to send LINE reply", map[string]interface{}{
				"user_id": userId,
				"error":   err.Error(),
			})
		}
	}

	return ctx.SendStatus(fiber.StatusOK)
}
