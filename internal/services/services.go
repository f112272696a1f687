package services

import (
	"log/slog"

	"github.com/lk16/cco/internal/config"
	"github.com/redis/go-redis/v9"
)

// Services contains the connections to the external services.
type Services struct {
	// Redis is nil when no Redis URL is configured.
	Redis *redis.Client
}

func InitServices(cfg *config.ServerConfig) (*Services, error) {
	if cfg.RedisURL == "" {
		slog.Info("No Redis URL configured, lobby mirror is disabled")
		return &Services{}, nil
	}

	redis, err := InitRedis(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	return &Services{
		Redis: redis,
	}, nil
}

// HasRedis checks if the Redis connection is available.
func (s *Services) HasRedis() bool {
	return s != nil && s.Redis != nil
}
