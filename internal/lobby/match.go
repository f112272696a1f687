package lobby

import (
	"fmt"
	"sync"
	"time"

	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/rules"
)

// Match is a game between a host and a guest. A player that joins its own
// match plays both colors.
type Match struct {
	mu sync.Mutex

	id        string
	name      string
	createdAt time.Time

	host      *Player
	guest     *Player
	hostColor rules.Color

	game   *rules.Game
	closed bool
}

func (m *Match) ID() string {
	return m.id
}

func (m *Match) Name() string {
	return m.name
}

// Colors returns the colors p plays in this match, or nil if p doesn't take part.
func (m *Match) Colors(p *Player) []rules.Color {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.colorsLocked(p)
}

func (m *Match) colorsLocked(p *Player) []rules.Color {
	switch {
	case p == m.host && p == m.guest:
		return []rules.Color{m.hostColor, m.hostColor.Opposite()}
	case p == m.host:
		return []rules.Color{m.hostColor}
	case p == m.guest:
		return []rules.Color{m.hostColor.Opposite()}
	default:
		return nil
	}
}

// State returns the full match state as seen by p.
func (m *Match) State(p *Player) (models.MatchState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.colorsLocked(p) == nil {
		return models.MatchState{}, ErrNotInMatch
	}
	return m.stateLocked(p, true), nil
}

// Summary returns the lobby entry of the match.
func (m *Match) Summary() models.MatchSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summaryLocked()
}

func (m *Match) summaryLocked() models.MatchSummary {
	summary := models.MatchSummary{
		ID:        m.id,
		Name:      m.name,
		HostName:  m.host.name,
		Open:      m.guest == nil,
		Finished:  m.game.Finished(),
		CreatedAt: m.createdAt,
	}
	if m.guest != nil {
		summary.GuestName = m.guest.name
	}
	return summary
}

func (m *Match) stateLocked(p *Player, full bool) models.MatchState {
	colors := m.colorsLocked(p)

	var snapshot rules.Snapshot
	if full {
		snapshot = m.game.FullData(colors...)
	} else {
		snapshot = m.game.Data(colors...)
	}

	state := models.MatchState{
		Snapshot:  snapshot,
		MatchID:   m.id,
		MatchName: m.name,
		HostName:  m.host.name,
		YourColor: colors[0],
		Closed:    m.closed,
	}
	if m.guest != nil {
		state.GuestName = m.guest.name
	}
	return state
}

// participantsLocked returns the distinct players of the match.
func (m *Match) participantsLocked() []*Player {
	players := []*Player{m.host}
	if m.guest != nil && m.guest != m.host {
		players = append(players, m.guest)
	}
	return players
}

func (m *Match) broadcastLocked(full bool) {
	for _, p := range m.participantsLocked() {
		p.push(m.stateLocked(p, full))
	}
}

func (m *Match) broadcast(full bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcastLocked(full)
}

// input forwards a click of p to the game. In a match against itself the
// player acts as the side to move.
func (m *Match) input(p *Player, row, col int, choice rules.PieceType) (bool, error) {
	if !rules.NewPosition(row, col).InBounds() {
		return false, fmt.Errorf("%w: (%d,%d)", ErrInvalidSquare, row, col)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	colors := m.colorsLocked(p)
	if colors == nil || m.closed {
		return false, ErrNotInMatch
	}
	if m.guest == nil {
		return false, ErrWaitingForGuest
	}

	color := colors[0]
	if len(colors) > 1 {
		color = m.game.Turn()
	}

	if !m.game.HandleInput(row, col, color, choice) {
		return false, nil
	}

	m.broadcastLocked(false)
	return true, nil
}

// close marks the match as closed and tells the participants.
func (m *Match) close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.broadcastLocked(false)
}
