package cli

import (
	"errors"
	"os"
	"strconv"
)

// ErrNoPlayer is returned by player commands run without a player id
var ErrNoPlayer = errors.New("player id required: pass --player or set GUESSFILM_PLAYER")

// Config holds CLI configuration
type Config struct {
	ServerURL string
	APIKey    string
	PlayerID  int64
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	playerID, _ := strconv.ParseInt(os.Getenv("GUESSFILM_PLAYER"), 10, 64)
	return &Config{
		ServerURL: getEnvOrDefault("GUESSFILM_SERVER", "http://localhost:8080"),
		APIKey:    os.Getenv("GUESSFILM_API_KEY"),
		PlayerID:  playerID,
		Output:    "text",
	}
}

// RequirePlayer returns the configured player id
func (c *Config) RequirePlayer() (int64, error) {
	if c.PlayerID == 0 {
		return 0, ErrNoPlayer
	}
	return c.PlayerID, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
