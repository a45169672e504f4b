// FILE: internal/controller/admin_controller.go
package controller

import (
	"heartgift-be/internal/dto"
	"heartgift-be/internal/pkg/serverutils"
	"heartgift-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	a := r.Group("/admin")
	a.Post("/login", c.Login)
	a.Get("/gifts", serverutils.JwtMiddleware, c.ListGifts)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

// ListGifts supports filtering by payment status and sender name.
func (c *adminController) ListGifts(ctx *fiber.Ctx) error {
	res, err := c.service.ListGifts(
		ctx.Context(),
		ctx.Query("status"),
		ctx.Query("sender"),
		ctx.QueryInt("page", 1),
		ctx.QueryInt("per_page", 20),
	)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Gifts retrieved", res))
}
