package client

import (
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/rules"
	"github.com/lk16/cco/internal/tests"
	"github.com/lk16/cco/internal/ws"
	"github.com/stretchr/testify/require"
)

const receiveTimeout = 5 * time.Second

func TestWebsocketURL(t *testing.T) {
	tests := []struct {
		serverURL string
		want      string
		wantErr   bool
	}{
		{"http://localhost:3000", "ws://localhost:3000/ws", false},
		{"https://cco.example.com/", "wss://cco.example.com/ws", false},
		{"https://cco.example.com/game", "wss://cco.example.com/game/ws", false},
		{"ws://localhost:3000", "ws://localhost:3000/ws", false},
		{"ftp://localhost", "", true},
		{"://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.serverURL, func(t *testing.T) {
			got, err := WebsocketURL(tt.serverURL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func startServer(t *testing.T) *config.ClientConfig {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	app, _ := tests.NewTestApp(tests.NewTestConfig())
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return &config.ClientConfig{
		ServerURL: "http://" + ln.Addr().String(),
		Token:     tests.TestToken,
	}
}

func dial(t *testing.T, cfg *config.ClientConfig) *Session {
	t.Helper()

	s, err := Dial(t.Context(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// await sends a request and skips pushes until its response arrives.
func await(t *testing.T, s *Session, event string, data any) *ws.Incoming {
	t.Helper()

	id, err := s.Send(event, data)
	require.NoError(t, err)

	for {
		require.NoError(t, s.conn.SetReadDeadline(time.Now().Add(receiveTimeout)))
		msg, err := s.Receive()
		require.NoError(t, err)
		if msg.ID == id {
			return msg
		}
	}
}

// awaitPush skips messages until a match state push satisfies done.
func awaitPush(t *testing.T, s *Session, done func(models.MatchState) bool) models.MatchState {
	t.Helper()

	for {
		require.NoError(t, s.conn.SetReadDeadline(time.Now().Add(receiveTimeout)))
		msg, err := s.Receive()
		require.NoError(t, err)
		if msg.ID != 0 || msg.Event != ws.EventMatchState {
			continue
		}

		var state models.MatchState
		require.NoError(t, json.Unmarshal(msg.Data, &state))
		if done(state) {
			return state
		}
	}
}

func decodeData[T any](t *testing.T, msg *ws.Incoming) T {
	t.Helper()

	var data T
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	return data
}

func TestSession(t *testing.T) {
	cfg := startServer(t)
	api := NewAPIClient(cfg, false)

	alice := dial(t, cfg)
	bob := dial(t, cfg)

	msg := await(t, alice, ws.EventNewMatch, models.NewMatchRequest{PlayerName: "alice", MatchName: "first"})
	require.Equal(t, ws.EventMatch, msg.Event)
	match := decodeData[models.MatchSummary](t, msg)
	require.True(t, match.Open)

	msg = await(t, bob, ws.EventJoinMatch, models.JoinMatchRequest{MatchID: match.ID, PlayerName: "bob"})
	require.Equal(t, ws.EventMatch, msg.Event)
	require.Equal(t, "bob", decodeData[models.MatchSummary](t, msg).GuestName)

	matches, err := api.GetMatches()
	require.NoError(t, err)
	require.Equal(t, 1, matches.Count)
	require.Equal(t, "bob", matches.Matches[0].GuestName)

	msg = await(t, alice, ws.EventGetState, nil)
	require.Equal(t, ws.EventMatchState, msg.Event)
	aliceState := decodeData[models.MatchState](t, msg)

	white, black := alice, bob
	if aliceState.YourColor == rules.BLACK {
		white, black = bob, alice
	}

	for _, field := range []string{"e2", "e4"} {
		cmd, err := ParseCommand("click " + field)
		require.NoError(t, err)

		msg = await(t, white, cmd.Event, cmd.Data)
		require.Equal(t, ws.EventInputDone, msg.Event)
		require.True(t, decodeData[models.InputResponse](t, msg).Changed)
	}

	// Clicking out of turn is not an error, it just changes nothing.
	cmd, err := ParseCommand("click e4")
	require.NoError(t, err)
	msg = await(t, white, cmd.Event, cmd.Data)
	require.False(t, decodeData[models.InputResponse](t, msg).Changed)

	msg = await(t, black, ws.EventGetState, nil)
	blackState := decodeData[models.MatchState](t, msg)
	require.Equal(t, rules.BLACK, blackState.YourColor)
	require.Equal(t, rules.BLACK, blackState.Turn)
	require.Equal(t, []int{52, 36}, blackState.LastMove)

	var view View
	view.Update(blackState)
	lines, err := view.Lines()
	require.NoError(t, err)

	g := rules.NewGame(rules.WithTTTCenter(rules.PositionFromIndex(blackState.TTTCenter)))
	require.True(t, g.HandleInput(6, 4, rules.WHITE, rules.NoPiece))
	require.True(t, g.HandleInput(4, 4, rules.WHITE, rules.NoPiece))
	require.Equal(t, g.Board().ASCIIArtLines(g.TTTCenter()), lines[1:11])

	msg = await(t, alice, ws.EventJoinMatch, models.JoinMatchRequest{MatchID: "no-such-match", PlayerName: "alice"})
	require.Equal(t, ws.EventError, msg.Event)

	_, err = api.GetLobby()
	require.Error(t, err)

	require.NoError(t, api.CloseMatch(match.ID))
	require.Error(t, api.CloseMatch(match.ID))

	closed := awaitPush(t, black, func(state models.MatchState) bool { return state.Closed })
	require.Equal(t, match.ID, closed.MatchID)

	matches, err = api.GetMatches()
	require.NoError(t, err)
	require.Equal(t, 0, matches.Count)
}

func TestAPIClient_RenderBoard(t *testing.T) {
	cfg := startServer(t)

	start := rules.NewBoardStart()
	req := models.RenderRequest{Board: start.String(), Center: "d5"}

	lines, err := NewAPIClient(cfg, true).RenderBoard(req)
	require.NoError(t, err)
	require.Equal(t, start.ASCIIArtLines(rules.NewPosition(3, 3)), lines)

	cfg.Token = ""
	_, err = NewAPIClient(cfg, false).RenderBoard(req)
	require.ErrorContains(t, err, "Unauthorized")
}
