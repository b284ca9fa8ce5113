package controller

import (
	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, guard ...fiber.Handler)
	GetChatLogs(ctx *fiber.Ctx) error
	GetBranchStats(ctx *fiber.Ctx) error
	GetSystemLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router, guard ...fiber.Handler) {
	logs := r.Group("/admin/chat-logs", guard...)
	logs.Get("", c.GetChatLogs)
	logs.Get("/stats", c.GetBranchStats)

	sys := r.Group("/admin/system-logs", guard...)
	sys.Get("", c.GetSystemLogs)
	sys.Get("/:id", c.GetLogDetail)
}

func (c *adminController) GetChatLogs(ctx *fiber.Ctx) error {
	var req dto.ListChatLogRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}

	res, err := c.service.GetChatLogs(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Chat logs", res))
}

func (c *adminController) GetBranchStats(ctx *fiber.Ctx) error {
	stats, err := c.service.GetBranchStats(ctx.UserContext(), ctx.QueryInt("since_minutes", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Branch stats", stats))
}

func (c *adminController) GetSystemLogs(ctx *fiber.Ctx) error {
	logs, err := c.service.GetSystemLogs(ctx.UserContext(), ctx.QueryInt("page", 1), ctx.QueryInt("limit", 20), ctx.Query("level"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("System logs", logs))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	detail, err := c.service.GetLogDetail(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Log detail", detail))
}
