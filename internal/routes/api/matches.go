package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/lobby"
	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/repository"
)

func getLobby(c *fiber.Ctx) *lobby.Lobby {
	return c.Locals("lobby").(*lobby.Lobby) //nolint: errcheck
}

func errorJSON(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: err.Error()})
}

// GetMatches lists the matches of this server.
func GetMatches(c *fiber.Ctx) error {
	matches := getLobby(c).List()

	return c.Status(fiber.StatusOK).JSON(models.MatchesResponse{
		Count:   len(matches),
		Matches: matches,
	})
}

// GetMatch returns the lobby entry of a single match.
func GetMatch(c *fiber.Ctx) error {
	match, err := getLobby(c).Get(c.Params("id"))
	if errors.Is(err, lobby.ErrMatchNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(match.Summary())
}

// CloseMatch ends a match and notifies its players.
func CloseMatch(c *fiber.Ctx) error {
	err := getLobby(c).Close(c.Context(), c.Params("id"))
	if errors.Is(err, lobby.ErrMatchNotFound) {
		return errorJSON(c, fiber.StatusNotFound, err)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetLobby lists the lobby entries of all servers sharing the Redis instance.
func GetLobby(c *fiber.Ctx) error {
	repo := repository.NewLobbyRepository(c)

	resp, err := repo.ListMatches(c.Context())
	if errors.Is(err, repository.ErrRedisDisabled) {
		return errorJSON(c, fiber.StatusServiceUnavailable, err)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, err)
	}

	return c.Status(fiber.StatusOK).JSON(resp)
}
