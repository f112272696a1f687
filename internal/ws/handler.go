package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/lk16/cco/internal/lobby"
	"github.com/lk16/cco/internal/models"
)

const (
	requestTimeout = 2 * time.Second
)

// errInvalidMessage is returned for messages that can't be decoded. They are
// answered with an error event.
var errInvalidMessage = errors.New("invalid message")

// Conn is the part of a websocket connection the handler uses.
type Conn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
}

// Handler runs the session of one websocket connection. The connection plays
// as one player, which is created when it first creates or joins a match.
type Handler struct {
	lobby *lobby.Lobby
	ws    Conn

	// writeMu serializes writes of responses and pushed match states.
	writeMu sync.Mutex

	player *lobby.Player
	done   chan struct{}
}

// NewHandler creates a new Handler.
func NewHandler(ws Conn, l *lobby.Lobby) *Handler {
	return &Handler{lobby: l, ws: ws, done: make(chan struct{})}
}

func (h *Handler) readMessage() (*Incoming, error) {
	var req Incoming

	msgType, msg, err := h.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("ws read error: %w", err)
	}

	slog.Debug("read ws message", "msgType", msgType, "msg", string(msg))

	if msgType != websocket.TextMessage {
		return nil, fmt.Errorf("%w: unexpected message type: %d", errInvalidMessage, msgType)
	}

	if err = json.Unmarshal(msg, &req); err != nil {
		return nil, fmt.Errorf("%w: %w", errInvalidMessage, err)
	}

	return &req, nil
}

func (h *Handler) writeMessage(outgoing *Outgoing) error {
	msg, err := json.Marshal(outgoing)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	slog.Debug("write ws message", "msg", string(msg))

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err = h.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

// errorResponse turns a rejected request into an error event. The session continues.
func errorResponse(req *Incoming, err error) *Outgoing {
	return &Outgoing{
		Event: EventError,
		ID:    req.ID,
		Data:  models.ErrorResponse{Error: err.Error()},
	}
}

func (h *Handler) handleMessage(ctx context.Context, req *Incoming) (*Outgoing, error) {
	switch req.Event {
	case "":
		return nil, errors.New("event field is either empty or missing")
	case EventNewMatch:
		return h.handleNewMatch(ctx, req)
	case EventJoinMatch:
		return h.handleJoinMatch(ctx, req)
	case EventGetMatches:
		return h.handleGetMatches(req)
	case EventGetState:
		return h.handleGetState(req)
	case EventInput:
		return h.handleInput(ctx, req)
	case EventLeaveMatch:
		return h.handleLeaveMatch(ctx, req)
	default:
		return nil, fmt.Errorf("unknown event: %s", req.Event)
	}
}

// Handle handles the websocket connection until it is closed. A player that
// disconnects leaves its match.
func (h *Handler) Handle() error {
	defer h.disconnect()

	for {
		req, err := h.readMessage()
		if errors.Is(err, errInvalidMessage) {
			if err = h.writeMessage(errorResponse(&Incoming{}, err)); err != nil {
				return fmt.Errorf("ws write error: %w", err)
			}
			continue
		}
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		resp, err := h.handleMessage(ctx, req)
		cancel()

		if err != nil {
			resp = errorResponse(req, err)
		}

		if err = h.writeMessage(resp); err != nil {
			return fmt.Errorf("ws write error: %w", err)
		}
	}
}

func (h *Handler) disconnect() {
	close(h.done)

	if h.player == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	err := h.lobby.Leave(ctx, h.player)
	if err != nil && !errors.Is(err, lobby.ErrNotInMatch) {
		slog.Error("failed to leave match on disconnect", "player", h.player.ID(), "error", err)
	}
}

// ensurePlayer creates the player of this connection on first use.
func (h *Handler) ensurePlayer(name string) *lobby.Player {
	if h.player == nil {
		h.player = lobby.NewPlayer(name)
		go h.forwardUpdates(h.player)
	}
	return h.player
}

// forwardUpdates writes the match states pushed to player until the connection ends.
func (h *Handler) forwardUpdates(player *lobby.Player) {
	for {
		select {
		case <-h.done:
			return
		case state := <-player.Updates():
			outgoing := &Outgoing{Event: EventMatchState, Data: state}
			if err := h.writeMessage(outgoing); err != nil {
				slog.Warn("failed to push match state", "player", player.ID(), "error", err)
				return
			}
		}
	}
}

func decode[T any](req *Incoming) (*T, error) {
	var data T
	if err := json.Unmarshal(req.Data, &data); err != nil {
		return nil, fmt.Errorf("ws %s request unmarshal error: %w", req.Event, err)
	}
	return &data, nil
}

func (h *Handler) handleNewMatch(ctx context.Context, req *Incoming) (*Outgoing, error) {
	reqData, err := decode[models.NewMatchRequest](req)
	if err != nil {
		return nil, err
	}
	if err = reqData.Validate(); err != nil {
		return nil, err
	}

	match, err := h.lobby.Create(ctx, h.ensurePlayer(reqData.PlayerName), reqData.MatchName)
	if err != nil {
		return nil, err
	}

	return &Outgoing{Event: EventMatch, ID: req.ID, Data: match.Summary()}, nil
}

func (h *Handler) handleJoinMatch(ctx context.Context, req *Incoming) (*Outgoing, error) {
	reqData, err := decode[models.JoinMatchRequest](req)
	if err != nil {
		return nil, err
	}
	if err = reqData.Validate(); err != nil {
		return nil, err
	}

	match, err := h.lobby.Join(ctx, reqData.MatchID, h.ensurePlayer(reqData.PlayerName))
	if err != nil {
		return nil, err
	}

	return &Outgoing{Event: EventMatch, ID: req.ID, Data: match.Summary()}, nil
}

func (h *Handler) handleGetMatches(req *Incoming) (*Outgoing, error) {
	matches := h.lobby.List()

	return &Outgoing{
		Event: EventMatches,
		ID:    req.ID,
		Data:  models.MatchesResponse{Count: len(matches), Matches: matches},
	}, nil
}

func (h *Handler) handleGetState(req *Incoming) (*Outgoing, error) {
	if h.player == nil {
		return nil, lobby.ErrNotInMatch
	}

	match, err := h.lobby.MatchOf(h.player)
	if err != nil {
		return nil, err
	}

	state, err := match.State(h.player)
	if err != nil {
		return nil, err
	}

	return &Outgoing{Event: EventMatchState, ID: req.ID, Data: state}, nil
}

func (h *Handler) handleInput(ctx context.Context, req *Incoming) (*Outgoing, error) {
	if h.player == nil {
		return nil, lobby.ErrNotInMatch
	}

	reqData, err := decode[models.InputRequest](req)
	if err != nil {
		return nil, err
	}

	choice, err := reqData.Validate()
	if err != nil {
		return nil, err
	}

	changed, err := h.lobby.Input(ctx, h.player, reqData.Row, reqData.Col, choice)
	if err != nil {
		return nil, err
	}

	return &Outgoing{Event: EventInputDone, ID: req.ID, Data: models.InputResponse{Changed: changed}}, nil
}

func (h *Handler) handleLeaveMatch(ctx context.Context, req *Incoming) (*Outgoing, error) {
	if h.player == nil {
		return nil, lobby.ErrNotInMatch
	}

	if err := h.lobby.Leave(ctx, h.player); err != nil {
		return nil, err
	}

	return &Outgoing{Event: EventLeft, ID: req.ID, Data: nil}, nil
}
