package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	// LobbyTTL is how long a lobby entry lives in Redis without being refreshed.
	LobbyTTL = 300 * time.Second

	MaxMatches       = 1024
	MaxNameLength    = 32
	PlayerBufferSize = 16
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool
	StaticDir         string
}

// LoadServerConfig loads configuration from environment variables.
func LoadServerConfig() *ServerConfig {
	return &ServerConfig{
		ServerHost:        getEnvMust("CCO_SERVER_HOST"),
		ServerPort:        getEnvMust("CCO_SERVER_PORT"),
		RedisURL:          os.Getenv("CCO_REDIS_URL"),
		BasicAuthUsername: getEnvMust("CCO_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("CCO_BASIC_AUTH_PASS"),
		Token:             getEnvMust("CCO_SERVER_TOKEN"),
		Prefork:           getEnvMustBool("CCO_SERVER_PREFORK"),
		StaticDir:         os.Getenv("CCO_STATIC_DIR"),
	}
}

// ClientConfig is the configuration of the terminal client.
type ClientConfig struct {
	ServerURL string
	Token     string
}

func LoadClientConfig() *ClientConfig {
	return &ClientConfig{
		ServerURL: getEnvMust("CCO_SERVER_URL"),
		Token:     os.Getenv("CCO_SERVER_TOKEN"),
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	value := getEnvMust(key)

	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}
