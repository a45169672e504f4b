// FILE: internal/controller/music_controller.go
package controller

import (
	"errors"

	"heartgift-be/internal/entity"
	"heartgift-be/internal/pkg/serverutils"
	"heartgift-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IMusicController interface {
	RegisterRoutes(r fiber.Router)
}

type musicController struct {
	service service.IMusicService
}

func NewMusicController(service service.IMusicService) IMusicController {
	return &musicController{service: service}
}

func (c *musicController) RegisterRoutes(r fiber.Router) {
	m := r.Group("/music")
	m.Get("/search", c.Search)
}

// Search proxies the catalog search. A result superseded by a newer search
// returns 204 so the typeahead simply keeps waiting for the fresh one.
func (c *musicController) Search(ctx *fiber.Ctx) error {
	query := ctx.Query("q")
	if query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query parameter 'q' is required")
	}
	limit := ctx.QueryInt("limit", 10)

	res, err := c.service.Search(ctx.Context(), query, limit)
	if err != nil {
		if errors.Is(err, entity.ErrSearchResultDiscard) {
			return ctx.SendStatus(fiber.StatusNoContent)
		}
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Search results", res))
}
