package controller

import (
	"faq-chatbot-be/internal/dto"
	"faq-chatbot-be/internal/pkg/serverutils"
	"faq-chatbot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFaqController interface {
	RegisterRoutes(r fiber.Router, guard ...fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
}

type faqController struct {
	service service.IFaqService
}

func NewFaqController(service service.IFaqService) IFaqController {
	return &faqController{service: service}
}

func (c *faqController) RegisterRoutes(r fiber.Router, guard ...fiber.Handler) {
	h := r.Group("/admin/faq", guard...)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("/import", c.Import)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func faqId(ctx *fiber.Ctx) (uint, bool) {
	id, err := ctx.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (c *faqController) GetAll(ctx *fiber.Ctx) error {
	var req dto.ListFaqRequest
	if err := ctx.QueryParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid query"))
	}

	res, err := c.service.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all faq", res))
}

func (c *faqController) Show(ctx *fiber.Ctx) error {
	id, ok := faqId(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid FAQ ID"))
	}

	res, err := c.service.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show faq", res))
}

func (c *faqController) Create(ctx *fiber.Ctx) error {
	var req dto.FaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create faq", res))
}

func (c *faqController) Update(ctx *fiber.Ctx) error {
	id, ok := faqId(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid FAQ ID"))
	}

	var req dto.FaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update faq", res))
}

func (c *faqController) Delete(ctx *fiber.Ctx) error {
	id, ok := faqId(ctx)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid FAQ ID"))
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete faq", nil))
}

func (c *faqController) Import(ctx *fiber.Ctx) error {
	var req []dto.FaqRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	res, err := c.service.Import(ctx.UserContext(), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import faq", res))
}
