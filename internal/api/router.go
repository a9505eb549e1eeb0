package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/guessfilm/internal/api/handler"
	"github.com/mcoot/guessfilm/internal/api/middleware"
	"github.com/mcoot/guessfilm/internal/api/response"
	rootmiddleware "github.com/mcoot/guessfilm/internal/middleware"
	"github.com/mcoot/guessfilm/internal/services/auth"
	"github.com/mcoot/guessfilm/internal/services/bot"
	"github.com/mcoot/guessfilm/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	AuthService  *auth.Service
	Engine       game.EngineInterface
	Dispatcher   *bot.Dispatcher
	ResourcesDir string
	// FilmCount is reported by the health endpoint
	FilmCount int
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	messageHandler := handler.NewMessageHandler(cfg.Dispatcher)
	playerHandler := handler.NewPlayerHandler(cfg.Engine)
	filmHandler := handler.NewFilmHandler(cfg.Engine, cfg.ResourcesDir)

	// Create middleware
	apiKeyMiddleware := middleware.APIKey(cfg.AuthService)
	loggingMiddleware := rootmiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(loggingMiddleware)
	api.Use(recoveryMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler(cfg.FilmCount)).Methods(http.MethodGet)

	// Everything else requires the API key when one is configured
	protected := api.NewRoute().Subrouter()
	protected.Use(apiKeyMiddleware)

	protected.HandleFunc("/messages", messageHandler.Send).Methods(http.MethodPost)
	protected.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/players/{id}/flush", playerHandler.Flush).Methods(http.MethodPost)
	protected.HandleFunc("/films/{id}/image", filmHandler.Image).Methods(http.MethodGet)

	return r
}

func healthHandler(films int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{Status: "ok", Films: films})
	}
}
