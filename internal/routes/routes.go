package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/routes/api"
	"github.com/lk16/cco/internal/routes/static"
	"github.com/lk16/cco/internal/routes/version"
	"github.com/lk16/cco/internal/routes/ws"
)

func rootHandler(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.ServerConfig) //nolint: errcheck

	if cfg.StaticDir != "" {
		return c.Redirect("/static/")
	}
	return c.Redirect("/api/matches")
}

func SetupRoutes(app *fiber.App, cfg *config.ServerConfig) {
	// Serve API routes
	api.SetupRoutes(app)

	// Serve game sessions
	ws.SetupRoutes(app)

	// Serve static files
	static.SetupRoutes(app, cfg.StaticDir)

	// Serve version info
	version.SetupRoutes(app)

	// Serve root page
	app.Get("/", rootHandler)
}
