package handler

import (
	"net/http"

	"github.com/mcoot/guessfilm/internal/api/apierr"
	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/services/catalog"
	"github.com/mcoot/guessfilm/internal/services/game"
)

// FilmHandler serves catalog assets
type FilmHandler struct {
	engine       game.EngineInterface
	resourcesDir string
}

// NewFilmHandler creates a new film handler
func NewFilmHandler(engine game.EngineInterface, resourcesDir string) *FilmHandler {
	return &FilmHandler{
		engine:       engine,
		resourcesDir: resourcesDir,
	}
}

// Image handles GET /api/v1/films/{id}/image
func (h *FilmHandler) Image(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		WriteError(w, err)
		return
	}

	film, err := h.engine.Film(model.FilmID(id))
	if err != nil {
		WriteError(w, err)
		return
	}

	path, ok := catalog.ResolveImage(h.resourcesDir, film)
	if !ok {
		WriteError(w, apierr.NewImageNotFoundError())
		return
	}

	http.ServeFile(w, r, path)
}
