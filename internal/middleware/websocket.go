package middleware

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/models"
)

// UpgradeOnly rejects requests that don't ask for a websocket upgrade.
func UpgradeOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return c.Status(fiber.StatusUpgradeRequired).JSON(models.ErrorResponse{Error: "Websocket upgrade required"})
		}
		return c.Next()
	}
}
