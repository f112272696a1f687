package client

import (
	"testing"

	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/ws"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line      string
		wantName  string
		wantEvent string
		wantData  any
	}{
		{"help", CommandHelp, "", nil},
		{"  QUIT ", CommandQuit, "", nil},
		{"lobby", CommandLobby, "", nil},
		{"new alice first", "new", ws.EventNewMatch, models.NewMatchRequest{PlayerName: "alice", MatchName: "first"}},
		{"join abc bob", "join", ws.EventJoinMatch, models.JoinMatchRequest{MatchID: "abc", PlayerName: "bob"}},
		{"list", "list", ws.EventGetMatches, nil},
		{"state", "state", ws.EventGetState, nil},
		{"leave", "leave", ws.EventLeaveMatch, nil},
		{"click e2", "click", ws.EventInput, models.InputRequest{Row: 6, Col: 4}},
		{"click A8 Queen", "click", ws.EventInput, models.InputRequest{Row: 0, Col: 0, Promotion: "queen"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.wantName, cmd.Name)
			require.Equal(t, tt.wantEvent, cmd.Event)
			require.Equal(t, tt.wantData, cmd.Data)
		})
	}
}

func TestParseCommand_Invalid(t *testing.T) {
	tests := []struct {
		line        string
		wantUnknown bool
	}{
		{"", true},
		{"dance", true},
		{"quit now", false},
		{"new alice", false},
		{"click", false},
		{"click z9", false},
		{"click e8 king", false},
		{"click e8 queen please", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			require.Error(t, err)
			require.Nil(t, cmd)
			if tt.wantUnknown {
				require.ErrorIs(t, err, ErrUnknownCommand)
			} else {
				require.NotErrorIs(t, err, ErrUnknownCommand)
			}
		})
	}
}
