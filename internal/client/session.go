package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/fasthttp/websocket"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/ws"
)

// Session is a websocket connection to the game server.
type Session struct {
	conn *websocket.Conn

	writeMu sync.Mutex
	nextID  int
}

// WebsocketURL turns the http(s) server URL into the URL of the websocket route.
func WebsocketURL(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL scheme: %q", u.Scheme)
	}

	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	return u.String(), nil
}

// Dial opens a session with the server in cfg.
func Dial(ctx context.Context, cfg *config.ClientConfig) (*Session, error) {
	wsURL, err := WebsocketURL(cfg.ServerURL)
	if err != nil {
		return nil, err
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", wsURL, err)
	}
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	return &Session{conn: conn}, nil
}

// Send writes a request and returns its ID. Responses carry the same ID.
func (s *Session) Send(event string, data any) (int, error) {
	rawData, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("failed to encode %s data: %w", event, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.nextID++
	msg := ws.Incoming{Event: event, ID: s.nextID, Data: rawData}

	if err := s.conn.WriteJSON(msg); err != nil {
		return 0, fmt.Errorf("failed to send %s: %w", event, err)
	}
	return s.nextID, nil
}

// Receive blocks until the server sends a message. Pushes have ID 0.
func (s *Session) Receive() (*ws.Incoming, error) {
	var msg ws.Incoming
	if err := s.conn.ReadJSON(&msg); err != nil {
		return nil, fmt.Errorf("failed to receive: %w", err)
	}
	return &msg, nil
}

func (s *Session) Close() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteMessage(websocket.CloseMessage, msg)
	return s.conn.Close()
}
