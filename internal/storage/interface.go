package storage

import (
	"context"

	"github.com/mcoot/guessfilm/internal/model"
)

// PlayerStore defines the interface for player persistence
type PlayerStore interface {
	// GetPlayer returns model.ErrPlayerNotFound if no record exists
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)

	// CreatePlayer inserts the player if absent. If a record already exists
	// it is returned unchanged with created=false.
	CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, bool, error)

	// SavePlayers upserts all players in one batch. Empty input is a no-op.
	SavePlayers(ctx context.Context, players []*model.Player) error

	Close() error
}
