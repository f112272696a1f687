package ws

import (
	"errors"
	"io"
	"log/slog"

	fastws "github.com/fasthttp/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/lobby"
	"github.com/lk16/cco/internal/middleware"
	"github.com/lk16/cco/internal/ws"
)

func handleWs(c *websocket.Conn) {
	l := c.Locals("lobby").(*lobby.Lobby) //nolint: errcheck

	h := ws.NewHandler(c, l)
	err := h.Handle()

	var closeErr *fastws.CloseError
	if errors.As(err, &closeErr) || errors.Is(err, io.EOF) {
		slog.Debug("ws connection closed", "error", err)
		return
	}
	if err != nil {
		slog.Error("ws handle error", "error", err)
	}
}

// SetupRoutes sets up the routes for the websocket.
func SetupRoutes(app *fiber.App) {
	app.Get("/ws", middleware.UpgradeOnly(), websocket.New(handleWs))
}
