package game

import (
	"fmt"
	"time"

	"github.com/mcoot/guessfilm/internal/model"
)

// Config holds scoring, hinting and persistence settings for the engine
type Config struct {
	// MaxAttempts is the number of guesses a round starts with
	MaxAttempts int

	// Hints is the ordered hint policy, see HintFor
	Hints []HintRule

	// A win scores WinBase + attemptsLeft*WinPerAttempt
	WinBase       int
	WinPerAttempt int

	// SurrenderPenalty is subtracted on surrender and on running out of attempts
	SurrenderPenalty int

	// WriteThrough persists every mutation immediately. When false, mutated
	// players are only marked dirty and written by FlushAll.
	WriteThrough bool

	// FlushInterval is how often the background Flusher runs when
	// WriteThrough is disabled
	FlushInterval time.Duration
}

// DefaultConfig returns the standard game settings
func DefaultConfig() Config {
	return Config{
		MaxAttempts:      3,
		Hints:            DefaultHints(),
		WinBase:          5,
		WinPerAttempt:    2,
		SurrenderPenalty: 5,
		WriteThrough:     true,
		FlushInterval:    30 * time.Second,
	}
}

// Validate checks the config for values the engine cannot work with
func (c Config) Validate() error {
	if c.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be at least 1, got %d", model.ErrInvalidConfig, c.MaxAttempts)
	}
	for i, rule := range c.Hints {
		if rule.Below <= 0 || rule.Below > 1 {
			return fmt.Errorf("%w: hint %d threshold %v out of range (0, 1]", model.ErrInvalidConfig, i, rule.Below)
		}
		if i > 0 && rule.Below <= c.Hints[i-1].Below {
			return fmt.Errorf("%w: hint thresholds must be strictly increasing", model.ErrInvalidConfig)
		}
	}
	if !c.WriteThrough && c.FlushInterval <= 0 {
		return fmt.Errorf("%w: flush interval required when write-through is disabled", model.ErrInvalidConfig)
	}
	return nil
}
