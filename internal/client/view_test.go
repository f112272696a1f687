package client

import (
	"testing"

	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/rules"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	var view View

	_, err := view.Lines()
	require.ErrorIs(t, err, errNoBoard)

	center := rules.NewPosition(3, 3)
	g := rules.NewGame(rules.WithTTTCenter(center))

	state := models.MatchState{
		Snapshot:  g.FullData(rules.WHITE),
		MatchID:   "abc",
		MatchName: "first",
		HostName:  "alice",
		YourColor: rules.WHITE,
	}
	view.Update(state)

	lines, err := view.Lines()
	require.NoError(t, err)
	require.Equal(t, "first [abc]: alice vs (waiting)", lines[0])
	require.Equal(t, g.Board().ASCIIArtLines(center), lines[1:11])
	require.Equal(t, []string{"You play White", "White to move"}, lines[11:])

	require.True(t, g.HandleInput(6, 4, rules.WHITE, rules.NoPiece))

	// The selection doesn't change the board, so the board is left out.
	state.Snapshot = g.Data(rules.WHITE)
	state.GuestName = "bob"
	require.Nil(t, state.Board)
	view.Update(state)

	lines, err = view.Lines()
	require.NoError(t, err)
	require.Equal(t, "first [abc]: alice vs bob", lines[0])
	require.Equal(t, g.Board().ASCIIArtLines(center), lines[1:11])
	require.Equal(t, "Selected e2, moves: e3 e4", lines[len(lines)-1])

	require.True(t, g.HandleInput(4, 4, rules.WHITE, rules.NoPiece))
	state.Snapshot = g.Data(rules.WHITE)
	state.Closed = true
	view.Update(state)
	require.True(t, view.Closed())

	lines, err = view.Lines()
	require.NoError(t, err)
	require.Equal(t, g.Board().ASCIIArtLines(center), lines[1:11])
	require.Equal(t, []string{"You play White", "Last move: e2 e4", "Match closed"}, lines[11:])
}
