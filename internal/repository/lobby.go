package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/lobby"
	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/services"
	"github.com/redis/go-redis/v9"
)

const LobbyKey = "lobby"

var ErrRedisDisabled = errors.New("redis is not configured")

// LobbyRepository keeps the lobby entries of all server processes in a Redis
// hash. Every write resets the TTL of the hash.
type LobbyRepository struct {
	services *services.Services
}

func NewLobbyRepository(c *fiber.Ctx) *LobbyRepository {
	return &LobbyRepository{
		services: c.Locals("services").(*services.Services), //nolint: errcheck
	}
}

func NewLobbyRepositoryFromServices(services *services.Services) *LobbyRepository {
	return &LobbyRepository{
		services: services,
	}
}

func (repo *LobbyRepository) redis() (*redis.Client, error) {
	if !repo.services.HasRedis() {
		return nil, ErrRedisDisabled
	}
	return repo.services.Redis, nil
}

// SaveMatch stores or updates a lobby entry.
func (repo *LobbyRepository) SaveMatch(ctx context.Context, summary models.MatchSummary) error {
	redisConn, err := repo.redis()
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("error marshaling match summary: %w", err)
	}

	if err = redisConn.HSet(ctx, LobbyKey, summary.ID, jsonData).Err(); err != nil {
		return fmt.Errorf("error storing match: %w", err)
	}

	if err = redisConn.Expire(ctx, LobbyKey, config.LobbyTTL).Err(); err != nil {
		return fmt.Errorf("error setting TTL: %w", err)
	}

	return nil
}

// DeleteMatch removes a lobby entry. Removing a missing entry is not an error.
func (repo *LobbyRepository) DeleteMatch(ctx context.Context, id string) error {
	redisConn, err := repo.redis()
	if err != nil {
		return err
	}

	if err = redisConn.HDel(ctx, LobbyKey, id).Err(); err != nil {
		return fmt.Errorf("error deleting match: %w", err)
	}

	return nil
}

// GetMatch returns a single lobby entry.
func (repo *LobbyRepository) GetMatch(ctx context.Context, id string) (models.MatchSummary, error) {
	redisConn, err := repo.redis()
	if err != nil {
		return models.MatchSummary{}, err
	}

	jsonData, err := redisConn.HGet(ctx, LobbyKey, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.MatchSummary{}, lobby.ErrMatchNotFound
	}
	if err != nil {
		return models.MatchSummary{}, fmt.Errorf("error getting match: %w", err)
	}

	var summary models.MatchSummary
	if err = json.Unmarshal(jsonData, &summary); err != nil {
		return models.MatchSummary{}, fmt.Errorf("error unmarshaling match summary: %w", err)
	}

	return summary, nil
}

// ListMatches returns all lobby entries, oldest first.
func (repo *LobbyRepository) ListMatches(ctx context.Context) (models.MatchesResponse, error) {
	redisConn, err := repo.redis()
	if err != nil {
		return models.MatchesResponse{}, err
	}

	entries, err := redisConn.HGetAll(ctx, LobbyKey).Result()
	if err != nil {
		return models.MatchesResponse{}, fmt.Errorf("error getting matches: %w", err)
	}

	matches := make([]models.MatchSummary, 0, len(entries))
	for _, jsonData := range entries {
		var summary models.MatchSummary
		if err := json.Unmarshal([]byte(jsonData), &summary); err != nil {
			return models.MatchesResponse{}, fmt.Errorf("error unmarshaling match summary: %w", err)
		}
		matches = append(matches, summary)
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.Before(matches[j].CreatedAt)
	})

	return models.MatchesResponse{
		Count:   len(matches),
		Matches: matches,
	}, nil
}
