// FILE: internal/controller/plan_controller.go
// Controller for plan catalog endpoints
package controller

import (
	"heartgift-be/internal/entity"
	"heartgift-be/internal/pkg/serverutils"
	"heartgift-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPlanController interface {
	RegisterRoutes(r fiber.Router)
}

type planController struct {
	planService service.IPlanService
}

func NewPlanController(planService service.IPlanService) IPlanController {
	return &planController{planService: planService}
}

func (c *planController) RegisterRoutes(r fiber.Router) {
	p := r.Group("/plans")
	p.Get("/", c.GetPlans)
	p.Get("/gates", c.GetGates)
}

// GetPlans returns the full catalog for the pricing page.
func (c *planController) GetPlans(ctx *fiber.Ctx) error {
	plans, err := c.planService.GetPlans(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}

// GetGates returns the editor gating table for a tier, accepting the same
// plan tokens as the entry URL.
func (c *planController) GetGates(ctx *fiber.Ctx) error {
	tier := entity.ParseTier(ctx.Query("plan"))
	gates, err := c.planService.GetGates(ctx.Context(), tier)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Gates retrieved", gates))
}
