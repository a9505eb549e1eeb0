package response

import (
	"fmt"

	"github.com/mcoot/guessfilm/internal/services/bot"
	"github.com/mcoot/guessfilm/internal/services/game"
)

// Reply is one bot reply in API responses
type Reply struct {
	Text     string   `json:"text,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Keyboard []string `json:"keyboard,omitempty"`
}

// MessagesResponse is the response for POST /messages
type MessagesResponse struct {
	Replies []Reply `json:"replies"`
}

// ImageURL is the API path of a film's image
func ImageURL(image *bot.Image) string {
	return fmt.Sprintf("/api/v1/films/%d/image", image.FilmID)
}

// MessagesFromReplies converts dispatcher replies to the API shape
func MessagesFromReplies(replies []bot.Reply) MessagesResponse {
	resp := MessagesResponse{Replies: make([]Reply, 0, len(replies))}
	for _, r := range replies {
		reply := Reply{Text: r.Text, Keyboard: r.Keyboard}
		if r.Image != nil {
			reply.ImageURL = ImageURL(r.Image)
		}
		resp.Replies = append(resp.Replies, reply)
	}
	return resp
}

// PlayerStats is a player's progress in API responses
type PlayerStats struct {
	ID           int64 `json:"id"`
	Score        int   `json:"score"`
	GuessedFilms int   `json:"guessed_films"`
	InRound      bool  `json:"in_round"`
	AttemptsLeft int   `json:"attempts_left"`
}

// PlayerStatsFromGame converts engine stats to the API shape
func PlayerStatsFromGame(stats game.PlayerStats) PlayerStats {
	return PlayerStats{
		ID:           int64(stats.PlayerID),
		Score:        stats.Score,
		GuessedFilms: stats.GuessedFilms,
		InRound:      stats.InRound,
		AttemptsLeft: stats.AttemptsLeft,
	}
}

// Health is the response for GET /health
type Health struct {
	Status string `json:"status"`
	Films  int    `json:"films"`
}
