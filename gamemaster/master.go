package gamemaster

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"terra/game"
	"terra/rules"
)

var ErrUnknownGame = errors.New("unknown game")

// Master hosts any number of independent games, each behind its own Table.
type Master struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]*Table
}

var (
	defaultMaster *Master
	once          sync.Once
)

func NewMaster() *Master {
	return &Master{tables: map[uuid.UUID]*Table{}}
}

// Default returns the process-wide Master.
func Default() *Master {
	once.Do(func() {
		defaultMaster = NewMaster()
	})
	return defaultMaster
}

// Create seats the factions, starts the game and registers it under a new ID.
func (m *Master) Create(factions []rules.Faction, options ...game.Option) (uuid.UUID, error) {
	g, err := game.New(factions, options...)
	if err != nil {
		return uuid.Nil, err
	}
	if err := g.Start(); err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	m.mu.Lock()
	m.tables[id] = newTable(id, g)
	m.mu.Unlock()

	log.Info().Str("game", id.String()).Int("players", g.NumPlayers()).Int("rounds", g.MaxRounds()).Msg("game created")
	return id, nil
}

func (m *Master) Get(id uuid.UUID) (*Table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[id]
	if !ok {
		return nil, fmt.Errorf("game %v: %w", id, ErrUnknownGame)
	}
	return t, nil
}

// Len returns the number of hosted games.
func (m *Master) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tables)
}

func (m *Master) Play(id uuid.UUID, a game.Action) (game.Outcome, error) {
	t, err := m.Get(id)
	if err != nil {
		return game.Outcome{}, err
	}
	out, err := t.Play(a)
	if err != nil {
		ev := warn(id, err)
		if a != nil {
			ev = ev.Int("player", a.PlayerID()).Str("action", a.String())
		}
		ev.Msg("action rejected")
		return out, err
	}
	return out, nil
}

func (m *Master) Accept(id uuid.UUID, player, offer int) (game.PowerOffer, error) {
	t, err := m.Get(id)
	if err != nil {
		return game.PowerOffer{}, err
	}
	settled, err := t.Accept(player, offer)
	if err != nil {
		warn(id, err).Int("player", player).Int("offer", offer).Msg("offer acceptance rejected")
	}
	return settled, err
}

func (m *Master) Decline(id uuid.UUID, player, offer int) error {
	t, err := m.Get(id)
	if err != nil {
		return err
	}
	if err := t.Decline(player, offer); err != nil {
		warn(id, err).Int("player", player).Int("offer", offer).Msg("offer decline rejected")
		return err
	}
	return nil
}

func (m *Master) View(id uuid.UUID) (game.View, error) {
	t, err := m.Get(id)
	if err != nil {
		return game.View{}, err
	}
	return t.View(), nil
}

// Remove drops a game and closes its feed.
func (m *Master) Remove(id uuid.UUID) error {
	m.mu.Lock()
	t, ok := m.tables[id]
	delete(m.tables, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("game %v: %w", id, ErrUnknownGame)
	}

	t.mu.Lock()
	t.close()
	t.mu.Unlock()
	log.Info().Str("game", id.String()).Msg("game removed")
	return nil
}

func warn(id uuid.UUID, err error) *zerolog.Event {
	return log.Warn().Str("game", id.String()).Str("code", game.Code(err)).Err(err)
}
