package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/rules"
)

var errNoBoard = errors.New("no board received yet")

// View keeps the last known state of a match. Match states only carry the
// board when it changed, so the board of an earlier state is kept.
type View struct {
	board *rules.BoardData
	state *models.MatchState
}

// Update merges a match state pushed by the server.
func (v *View) Update(state models.MatchState) {
	if state.Board != nil {
		v.board = state.Board
	}
	v.state = &state
}

// Closed checks if the last state said the match is over for good.
func (v *View) Closed() bool {
	return v.state != nil && v.state.Closed
}

func fieldName(index int) string {
	if index < 0 || index >= rules.MaxRow*rules.MaxCol {
		return "?"
	}
	return rules.PositionFromIndex(index).String()
}

func fieldNames(indexes []int) string {
	names := make([]string, len(indexes))
	for i, index := range indexes {
		names[i] = fieldName(index)
	}
	return strings.Join(names, " ")
}

// Lines renders the match as text.
func (v *View) Lines() ([]string, error) {
	if v.state == nil || v.board == nil {
		return nil, errNoBoard
	}
	state := v.state

	board, err := rules.ParseBoardData(v.board)
	if err != nil {
		return nil, err
	}

	if state.TTTCenter < 0 || state.TTTCenter >= rules.MaxRow*rules.MaxCol {
		return nil, fmt.Errorf("invalid tic-tac-toe center: %d", state.TTTCenter)
	}
	center := rules.PositionFromIndex(state.TTTCenter)

	guest := state.GuestName
	if guest == "" {
		guest = "(waiting)"
	}

	lines := []string{
		fmt.Sprintf("%s [%s]: %s vs %s", state.MatchName, state.MatchID, state.HostName, guest),
	}
	lines = append(lines, board.ASCIIArtLines(center)...)

	if state.YourColor.Valid() {
		lines = append(lines, "You play "+state.YourColor.Title())
	}

	if len(state.LastMove) > 0 {
		lines = append(lines, "Last move: "+fieldNames(state.LastMove))
	}

	switch {
	case state.Closed:
		lines = append(lines, "Match closed")
	case state.Result != nil:
		if winner, ok := state.Result.Winner(); ok {
			lines = append(lines, fmt.Sprintf("%s wins by %s", winner.Title(), state.ResultReason))
		} else {
			lines = append(lines, "Draw by "+state.ResultReason)
		}
	default:
		lines = append(lines, state.Turn.Title()+" to move")
	}

	if state.Selected != nil {
		lines = append(lines, fmt.Sprintf("Selected %s, moves: %s", fieldName(*state.Selected), fieldNames(state.LegalMoves)))
	}

	if state.Promotion != nil {
		lines = append(lines, fmt.Sprintf("Promote on %s: click it with queen, rook, bishop or knight", fieldName(*state.Promotion)))
	}

	return lines, nil
}
