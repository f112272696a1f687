package ws

import (
	"encoding/json"
)

// Events sent by clients.
const (
	EventNewMatch   = "new_match"
	EventJoinMatch  = "join_match"
	EventGetMatches = "get_matches"
	EventGetState   = "get_state"
	EventInput      = "input"
	EventLeaveMatch = "leave_match"
)

// Events sent by the server.
const (
	EventMatchState = "match_state"
	EventMatches    = "matches"
	EventMatch      = "match"
	EventInputDone  = "input_done"
	EventLeft       = "left"
	EventError      = "error"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing is either a response to an Incoming message with the same ID, or a
// push with ID 0.
type Outgoing struct {
	Event string `json:"event"`
	ID    int    `json:"id"`
	Data  any    `json:"data"`
}
