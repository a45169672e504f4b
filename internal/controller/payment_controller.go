// FILE: internal/controller/payment_controller.go
package controller

import (
	"heartgift-be/internal/dto"
	"heartgift-be/internal/pkg/serverutils"
	"heartgift-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPaymentController interface {
	RegisterRoutes(r fiber.Router)
}

type paymentController struct {
	service service.IPaymentService
}

func NewPaymentController(service service.IPaymentService) IPaymentController {
	return &paymentController{service: service}
}

func (c *paymentController) RegisterRoutes(r fiber.Router) {
	p := r.Group("/payment")
	p.Post("/checkout", c.Checkout)
	p.Post("/midtrans/notification", c.Webhook)
	p.Get("/status/:giftId", c.GetStatus)
}

func (c *paymentController) Checkout(ctx *fiber.Ctx) error {
	var req dto.CheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Checkout(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Checkout processed", res))
}

// Webhook receives Midtrans notifications. Always responds 200 on handled
// events so Midtrans stops retrying; bad signatures surface as 401.
func (c *paymentController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid notification body")
	}

	if err := c.service.HandleNotification(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Notification processed", fiber.Map{"ok": true}))
}

func (c *paymentController) GetStatus(ctx *fiber.Ctx) error {
	giftId, err := uuid.Parse(ctx.Params("giftId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid gift id")
	}

	res, err := c.service.GetStatus(ctx.Context(), giftId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Payment status", res))
}
