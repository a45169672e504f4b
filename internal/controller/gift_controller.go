// FILE: internal/controller/gift_controller.go
package controller

import (
	"heartgift-be/internal/dto"
	"heartgift-be/internal/pkg/serverutils"
	"heartgift-be/internal/service"
	"heartgift-be/pkg/qrserver"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IGiftController interface {
	RegisterRoutes(r fiber.Router)
}

type giftController struct {
	service service.IGiftService
}

func NewGiftController(service service.IGiftService) IGiftController {
	return &giftController{service: service}
}

func (c *giftController) RegisterRoutes(r fiber.Router) {
	g := r.Group("/gifts")
	g.Post("/draft", c.CreateDraft)
	g.Post("/draft/apply", c.ApplyUpdate)
	g.Post("/draft/reset", c.ResetDraft)
	g.Post("/draft/validate", c.ValidateDraft)
	g.Post("/", c.Finalize)
	g.Get("/:id", c.GetGift)
	g.Get("/:id/countdown", c.GetCountdown)
	g.Get("/:id/qrcode", c.GetQRCode)
}

// CreateDraft starts a fresh draft for a theme and plan token.
func (c *giftController) CreateDraft(ctx *fiber.Ctx) error {
	var req dto.CreateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	draft, err := c.service.NewDraft(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Draft created", draft))
}

func (c *giftController) ApplyUpdate(ctx *fiber.Ctx) error {
	var req dto.ApplyUpdateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	draft, err := c.service.ApplyUpdate(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft updated", draft))
}

func (c *giftController) ResetDraft(ctx *fiber.Ctx) error {
	var req dto.ResetDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	draft, err := c.service.Reset(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft reset", draft))
}

func (c *giftController) ValidateDraft(ctx *fiber.Ctx) error {
	var req dto.ValidateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	result, err := c.service.Validate(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Draft validated", result))
}

// Finalize persists a valid draft and returns the share link and QR codes.
func (c *giftController) Finalize(ctx *fiber.Ctx) error {
	var req dto.FinalizeGiftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	result, err := c.service.Finalize(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Gift created", result))
}

func (c *giftController) GetGift(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid gift id")
	}

	gift, err := c.service.Fetch(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Gift retrieved", gift))
}

func (c *giftController) GetCountdown(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid gift id")
	}

	snap, err := c.service.Countdown(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Countdown", snap))
}

func (c *giftController) GetQRCode(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid gift id")
	}

	size := qrserver.Size(ctx.Query("size", string(qrserver.SizeMedium)))
	url, err := c.service.QRCode(ctx.Context(), id, size)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("QR code", fiber.Map{"url": url, "size": string(size)}))
}
