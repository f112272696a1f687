package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/middleware"
)

// SetupRoutes sets up the API routes.
func SetupRoutes(app *fiber.App) {
	apiGroup := app.Group("/api")

	// Match routes
	apiGroup.Get("/matches", GetMatches)
	apiGroup.Get("/matches/:id", GetMatch)

	adminGroup := apiGroup.Group("", middleware.AuthOrToken())
	adminGroup.Delete("/matches/:id", CloseMatch)
	adminGroup.Get("/lobby", GetLobby)
	adminGroup.Post("/boards/render", RenderBoard)
}
