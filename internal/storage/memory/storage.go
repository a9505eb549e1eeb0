package memory

import (
	"context"
	"sync"

	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players map[model.PlayerID]*model.Player
	writes  int
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players: make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.players[player.ID]; ok {
		return existing.Clone(), false, nil
	}
	s.players[player.ID] = player.Clone()
	s.writes++
	return player, true, nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	if len(players) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		s.players[p.ID] = p.Clone()
		s.writes++
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}

// Writes returns the number of player records written so far
func (s *Storage) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

// Len returns the number of stored players
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.players)
}
