package redis

import (
	"fmt"

	"github.com/mcoot/guessfilm/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "guessfilm"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", keyPrefix, id)
}
