package lobby

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/models"
)

// Player is a participant of the lobby. Match states for the player are
// delivered on its update channel.
type Player struct {
	id      string
	name    string
	updates chan models.MatchState
}

func NewPlayer(name string) *Player {
	return &Player{
		id:      uuid.NewString(),
		name:    name,
		updates: make(chan models.MatchState, config.PlayerBufferSize),
	}
}

func (p *Player) ID() string {
	return p.id
}

func (p *Player) Name() string {
	return p.name
}

// Updates returns the channel on which match states are pushed.
func (p *Player) Updates() <-chan models.MatchState {
	return p.updates
}

// push delivers state without blocking. A player that doesn't keep up loses updates.
func (p *Player) push(state models.MatchState) {
	select {
	case p.updates <- state:
	default:
		slog.Warn("Dropping match state, player is not reading", "player", p.id, "match", state.MatchID)
	}
}
