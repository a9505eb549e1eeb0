package handler

import (
	"net/http"

	"github.com/mcoot/guessfilm/internal/api/response"
	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/services/game"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	engine game.EngineInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(engine game.EngineInterface) *PlayerHandler {
	return &PlayerHandler{
		engine: engine,
	}
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	stats, err := h.engine.Stats(r.Context(), model.PlayerID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerStatsFromGame(stats))
}

// Flush handles POST /api/v1/players/{id}/flush
func (h *PlayerHandler) Flush(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.engine.FlushPlayer(r.Context(), model.PlayerID(id)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
