package internal

import (
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/lobby"
	"github.com/lk16/cco/internal/middleware"
	"github.com/lk16/cco/internal/repository"
	"github.com/lk16/cco/internal/routes"
	"github.com/lk16/cco/internal/services"
)

const (
	defaultConcurrency  = 256 * 1024 // Maximum number of concurrent connections per worker
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 1024 * 1024 // 1MB
)

// SetupApp loads the configuration, connects to the external services and builds the app.
func SetupApp() (*fiber.App, *config.ServerConfig) {
	cfg := config.LoadServerConfig()

	if cfg.Prefork {
		slog.Warn("Prefork is enabled, every process has its own lobby")
	}

	services, err := services.InitServices(cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	var opts []lobby.Option
	if services.HasRedis() {
		opts = append(opts, lobby.WithStore(repository.NewLobbyRepositoryFromServices(services)))
	}

	return BuildApp(cfg, services, lobby.New(opts...)), cfg
}

// BuildApp creates the Fiber app around existing services and lobby.
func BuildApp(cfg *config.ServerConfig, services *services.Services, l *lobby.Lobby) *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:      cfg.Prefork,
		Concurrency:  defaultConcurrency,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
		BodyLimit:    defaultBodyLimit,
	})

	// Setup connections to external services, config and the lobby in Fiber app
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("services", services)
		c.Locals("config", cfg)
		c.Locals("lobby", l)
		return c.Next()
	})

	// Add logging middleware
	app.Use(middleware.Logging())

	// Setup all routes
	routes.SetupRoutes(app, cfg)

	return app
}
