package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/rules"
)

// MatchSummary describes a match in the lobby.
type MatchSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HostName  string    `json:"host_name"`
	GuestName string    `json:"guest_name,omitempty"`
	Open      bool      `json:"open"`
	Finished  bool      `json:"finished"`
	CreatedAt time.Time `json:"created_at"`
}

// MatchesResponse is the lobby listing.
type MatchesResponse struct {
	Count   int            `json:"count"`
	Matches []MatchSummary `json:"matches"`
}

// NewMatchRequest is the payload for creating a match.
type NewMatchRequest struct {
	PlayerName string `json:"player_name"`
	MatchName  string `json:"match_name"`
}

// Validate validates the new match request.
func (r *NewMatchRequest) Validate() error {
	if err := validateName("player_name", r.PlayerName); err != nil {
		return err
	}
	return validateName("match_name", r.MatchName)
}

// JoinMatchRequest is the payload for joining a match.
type JoinMatchRequest struct {
	MatchID    string `json:"match_id"`
	PlayerName string `json:"player_name"`
}

// Validate validates the join match request.
func (r *JoinMatchRequest) Validate() error {
	if r.MatchID == "" {
		return errors.New("match_id is empty")
	}
	return validateName("player_name", r.PlayerName)
}

// InputRequest is a click on a square, with an optional promotion choice such as "queen".
type InputRequest struct {
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	Promotion string `json:"promotion,omitempty"`
}

// Validate checks the square and the promotion choice and returns the parsed choice.
func (r *InputRequest) Validate() (rules.PieceType, error) {
	if !rules.NewPosition(r.Row, r.Col).InBounds() {
		return rules.NoPiece, fmt.Errorf("square (%d,%d) is not on the board", r.Row, r.Col)
	}

	if r.Promotion == "" {
		return rules.NoPiece, nil
	}

	choice, err := rules.ParsePieceType(r.Promotion)
	if err != nil {
		return rules.NoPiece, err
	}
	if !choice.Promotable() {
		return rules.NoPiece, fmt.Errorf("cannot promote to %s", choice)
	}
	return choice, nil
}

// InputResponse tells whether an input changed the match.
type InputResponse struct {
	Changed bool `json:"changed"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type VersionResponse struct {
	Commit string `json:"commit"`
}

func validateName(field, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%s is empty", field)
	}
	if len(trimmed) > config.MaxNameLength {
		return fmt.Errorf("%s is longer than %d characters", field, config.MaxNameLength)
	}
	return nil
}

// RenderRequest asks for the ascii art of a text board or a FEN. Center is the
// field name of the tic-tac-toe center, such as "d5".
type RenderRequest struct {
	Board  string `json:"board,omitempty"`
	FEN    string `json:"fen,omitempty"`
	Center string `json:"center"`
}

// Validate checks that exactly one of Board and FEN is set.
func (r *RenderRequest) Validate() error {
	if (r.Board == "") == (r.FEN == "") {
		return errors.New("exactly one of board and fen must be set")
	}
	return nil
}

type RenderResponse struct {
	Lines []string `json:"lines"`
}
