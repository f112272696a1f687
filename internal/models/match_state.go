package models

import (
	"github.com/lk16/cco/internal/rules"
)

// MatchState is the game snapshot sent to one participant of a match, with the
// match details. YourColor is the first color the recipient plays.
type MatchState struct {
	rules.Snapshot

	MatchID   string      `json:"matchId"`
	MatchName string      `json:"matchName"`
	HostName  string      `json:"hostName"`
	GuestName string      `json:"guestName,omitempty"`
	YourColor rules.Color `json:"yourColor"`
	Closed    bool        `json:"closed,omitempty"`
}
