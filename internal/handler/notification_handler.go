// FILE: internal/handler/notification_handler.go
package handler

import (
	"heartgift-be/internal/pkg/logger"
	internalWS "heartgift-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// NotificationHandler upgrades gift viewers to a websocket where payment
// status changes are pushed. The endpoint is public: the gift id is the
// share secret, same as the view page.
type NotificationHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{hub: hub, logger: log}
}

func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	giftId, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid gift id")
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "websocket session started", map[string]interface{}{"gift_id": giftId.String()})
		internalWS.ServeWs(h.hub, conn, giftId.String())
		h.logger.Info("NotificationHandler", "websocket session ended", map[string]interface{}{"gift_id": giftId.String()})
	})(c)
}

// RegisterRoutes registers the websocket route.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/gifts/:id", h.ServeWs)
}
