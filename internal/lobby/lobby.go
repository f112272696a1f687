package lobby

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lk16/cco/internal/config"
	"github.com/lk16/cco/internal/models"
	"github.com/lk16/cco/internal/rules"
)

// Store mirrors the lobby entries, so they can be listed outside this process.
type Store interface {
	SaveMatch(ctx context.Context, summary models.MatchSummary) error
	DeleteMatch(ctx context.Context, id string) error
}

// Lobby is the registry of live matches. A player takes part in at most one match.
type Lobby struct {
	mu      sync.Mutex
	matches map[string]*Match

	// players maps player IDs to the match they take part in.
	players map[string]*Match

	// rand is only used while holding mu.
	rand  *rand.Rand
	store Store
}

type Option func(*Lobby)

// WithStore mirrors lobby entries to store.
func WithStore(store Store) Option {
	return func(l *Lobby) {
		l.store = store
	}
}

// WithRand sets the random source for host colors and tic-tac-toe centers.
func WithRand(r *rand.Rand) Option {
	return func(l *Lobby) {
		l.rand = r
	}
}

func New(opts ...Option) *Lobby {
	l := &Lobby{
		matches: make(map[string]*Match),
		players: make(map[string]*Match),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rand == nil {
		l.rand = rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec
	}
	return l
}

// Create opens a new match hosted by host. The host gets a random color.
func (l *Lobby) Create(ctx context.Context, host *Player, name string) (*Match, error) {
	l.mu.Lock()

	if _, ok := l.players[host.id]; ok {
		l.mu.Unlock()
		return nil, ErrAlreadyInMatch
	}
	if len(l.matches) >= config.MaxMatches {
		l.mu.Unlock()
		return nil, ErrLobbyFull
	}

	hostColor := rules.WHITE
	if l.rand.Intn(2) == 0 { //nolint:mnd
		hostColor = rules.BLACK
	}

	match := &Match{
		id:        uuid.NewString(),
		name:      name,
		createdAt: time.Now(),
		host:      host,
		hostColor: hostColor,
		game:      rules.NewGame(rules.WithRand(l.rand)),
	}

	l.matches[match.id] = match
	l.players[host.id] = match
	l.mu.Unlock()

	slog.Info("Created match", "match", match.id, "name", name, "host", host.name, "color", hostColor)

	match.broadcast(true)
	l.mirror(ctx, match)
	return match, nil
}

// Join adds guest to the match with the given ID. A host joining its own
// match plays against itself.
func (l *Lobby) Join(ctx context.Context, id string, guest *Player) (*Match, error) {
	l.mu.Lock()

	match, ok := l.matches[id]
	if !ok {
		l.mu.Unlock()
		return nil, ErrMatchNotFound
	}
	if current, ok := l.players[guest.id]; ok && current != match {
		l.mu.Unlock()
		return nil, ErrAlreadyInMatch
	}

	match.mu.Lock()
	if match.guest != nil {
		match.mu.Unlock()
		l.mu.Unlock()
		return nil, ErrMatchFull
	}
	match.guest = guest
	match.broadcastLocked(true)
	match.mu.Unlock()

	l.players[guest.id] = match
	l.mu.Unlock()

	slog.Info("Joined match", "match", match.id, "guest", guest.name)

	l.mirror(ctx, match)
	return match, nil
}

// Get returns the match with the given ID.
func (l *Lobby) Get(id string) (*Match, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	match, ok := l.matches[id]
	if !ok {
		return nil, ErrMatchNotFound
	}
	return match, nil
}

// MatchOf returns the match p takes part in.
func (l *Lobby) MatchOf(p *Player) (*Match, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	match, ok := l.players[p.id]
	if !ok {
		return nil, ErrNotInMatch
	}
	return match, nil
}

// List returns the lobby entries, oldest first.
func (l *Lobby) List() []models.MatchSummary {
	l.mu.Lock()
	matches := make([]*Match, 0, len(l.matches))
	for _, match := range l.matches {
		matches = append(matches, match)
	}
	l.mu.Unlock()

	summaries := make([]models.MatchSummary, len(matches))
	for i, match := range matches {
		summaries[i] = match.Summary()
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})

	return summaries
}

// Input passes a click of p on row, col to the game of its match. It returns
// whether the game state changed. Participants are notified of changes.
func (l *Lobby) Input(ctx context.Context, p *Player, row, col int, choice rules.PieceType) (bool, error) {
	match, err := l.MatchOf(p)
	if err != nil {
		return false, err
	}

	changed, err := match.input(p, row, col, choice)
	if err != nil || !changed {
		return false, err
	}

	l.mirror(ctx, match)
	return true, nil
}

// Leave ends the match of p. Leaving a match closes it for both players.
func (l *Lobby) Leave(ctx context.Context, p *Player) error {
	match, err := l.MatchOf(p)
	if err != nil {
		return err
	}

	slog.Info("Player left match", "match", match.id, "player", p.name)
	return l.Close(ctx, match.id)
}

// Close removes the match with the given ID and notifies its participants.
func (l *Lobby) Close(ctx context.Context, id string) error {
	l.mu.Lock()
	match, ok := l.matches[id]
	if !ok {
		l.mu.Unlock()
		return ErrMatchNotFound
	}

	delete(l.matches, id)
	for playerID, m := range l.players {
		if m == match {
			delete(l.players, playerID)
		}
	}
	l.mu.Unlock()

	match.close()

	if l.store != nil {
		if err := l.store.DeleteMatch(ctx, id); err != nil {
			slog.Error("Failed to delete match from lobby store", "match", id, "error", err)
		}
	}

	slog.Info("Closed match", "match", id)
	return nil
}

// mirror writes the lobby entry of match to the store. Store errors don't fail
// lobby operations.
func (l *Lobby) mirror(ctx context.Context, match *Match) {
	if l.store == nil {
		return
	}

	if err := l.store.SaveMatch(ctx, match.Summary()); err != nil {
		slog.Error("Failed to save match to lobby store", "match", match.id, "error", err)
	}
}
