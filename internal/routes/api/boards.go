package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/rules"
)

// RenderBoard draws a text board or FEN with the tic-tac-toe zone marked.
func RenderBoard(c *fiber.Ctx) error {
	var req models.RenderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: "Invalid request body"})
	}

	if err := req.Validate(); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	center, err := rules.FieldToPosition(req.Center)
	if err == nil {
		err = rules.CheckTTTCenter(center)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	var board *rules.Board
	if req.FEN != "" {
		var game *rules.Game
		game, err = rules.NewGameFromFEN(req.FEN, rules.WithTTTCenter(center))
		if err == nil {
			board = game.Board()
		}
	} else {
		board, err = rules.ParseBoard(req.Board)
	}
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err)
	}

	return c.Status(fiber.StatusOK).JSON(models.RenderResponse{Lines: board.ASCIIArtLines(center)})
}
