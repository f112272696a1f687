package tests

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/lobby"
	"github.com/lk16/cco/internal/services"
)

const (
	TestToken    = "test-token"
	TestUser     = "admin"
	TestPassword = "secret"
)

// NewTestConfig returns a server config without Redis and static files.
func NewTestConfig() *config.ServerConfig {
	return &config.ServerConfig{
		ServerHost:        "localhost",
		ServerPort:        "3000",
		BasicAuthUsername: TestUser,
		BasicAuthPassword: TestPassword,
		Token:             TestToken,
	}
}

// NewTestApp builds an app around cfg and a fresh lobby.
func NewTestApp(cfg *config.ServerConfig) (*fiber.App, *lobby.Lobby) {
	l := lobby.New()
	return internal.BuildApp(cfg, &services.Services{}, l), l
}
