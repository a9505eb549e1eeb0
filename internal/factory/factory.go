package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/guessfilm/internal/config"
	"github.com/mcoot/guessfilm/internal/dependencies/random"
	"github.com/mcoot/guessfilm/internal/lexicon"
	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/services/auth"
	"github.com/mcoot/guessfilm/internal/services/bot"
	"github.com/mcoot/guessfilm/internal/services/catalog"
	"github.com/mcoot/guessfilm/internal/services/game"
	"github.com/mcoot/guessfilm/internal/storage"
	"github.com/mcoot/guessfilm/internal/storage/memory"
	mongostorage "github.com/mcoot/guessfilm/internal/storage/mongo"
	pgstorage "github.com/mcoot/guessfilm/internal/storage/postgres"
	redisstorage "github.com/mcoot/guessfilm/internal/storage/redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.PlayerStore

	// Catalog
	Films        []model.Film
	ResourcesDir string

	// Services
	Engine      *game.Engine
	Dispatcher  *bot.Dispatcher
	AuthService *auth.Service
	Lexicon     *lexicon.Lexicon

	// Flusher is set when write-through is disabled; the caller runs it
	Flusher *game.Flusher

	logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// FilmsFile is the catalog to load. Ignored when Films is set.
	FilmsFile string
	// Films is a preloaded catalog (optional)
	Films []model.Film
	// ResourcesDir is where film images are resolved
	ResourcesDir string
	// Language selects the lexicon, defaults to English
	Language string
	// Game holds engine settings. Zero value means game.DefaultConfig().
	Game game.Config
	// APIKeyHash enables API key auth when set
	APIKeyHash string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend, defaults to memory
	StorageType string
	// Backend settings, required for the matching StorageType
	RedisConfig *redisstorage.Config
	MongoConfig *mongostorage.Config
	PostgresURL string
}

// FromEnv translates the resolved environment config into a factory Config
func FromEnv(env *config.Config, logger *slog.Logger) Config {
	cfg := Config{
		FilmsFile:    env.FilmsFile,
		ResourcesDir: env.ResourcesPath,
		Language:     env.Language,
		Game:         env.Game,
		APIKeyHash:   env.APIKeyHash,
		Logger:       logger,
		StorageType:  env.StorageType,
		PostgresURL:  env.PostgresURL,
	}
	switch env.StorageType {
	case config.StorageRedis:
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = env.RedisURL
		cfg.RedisConfig = &redisCfg
	case config.StorageMongo:
		mongoCfg := mongostorage.DefaultConfig()
		mongoCfg.URI = env.MongoURI
		mongoCfg.Database = env.MongoDatabase
		cfg.MongoConfig = &mongoCfg
	}
	return cfg
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	films := cfg.Films
	if films == nil {
		var err error
		films, err = catalog.LoadFromFile(cfg.FilmsFile)
		if err != nil {
			return nil, err
		}
		logger.Info("catalog loaded", slog.String("path", cfg.FilmsFile), slog.Int("films", len(films)))
	}

	store, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app, err := newWithDependencies(store, films, cfg, random.New(), logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

func newStorage(ctx context.Context, cfg Config) (storage.PlayerStore, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageMemory
	}

	switch storageType {
	case config.StorageMemory:
		return memory.New(), nil
	case config.StorageRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	case config.StorageMongo:
		if cfg.MongoConfig == nil {
			return nil, errors.New("MongoConfig required when StorageType is mongo")
		}
		return mongostorage.New(ctx, *cfg.MongoConfig)
	case config.StoragePostgres:
		if cfg.PostgresURL == "" {
			return nil, errors.New("PostgresURL required when StorageType is postgres")
		}
		return pgstorage.New(ctx, cfg.PostgresURL)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be memory, redis, mongo or postgres", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.PlayerStore, films []model.Film, cfg Config, rnd random.Random, logger *slog.Logger) (*App, error) {
	gameCfg := cfg.Game
	if gameCfg.MaxAttempts == 0 {
		gameCfg = game.DefaultConfig()
	}

	language := cfg.Language
	if language == "" {
		language = lexicon.English
	}
	lex, err := lexicon.For(language)
	if err != nil {
		return nil, err
	}

	engine, err := game.New(films, store, gameCfg, logger)
	if err != nil {
		return nil, err
	}

	authService, err := auth.New(cfg.APIKeyHash, rnd)
	if err != nil {
		return nil, err
	}

	app := &App{
		Storage:      store,
		Films:        films,
		ResourcesDir: cfg.ResourcesDir,
		Engine:       engine,
		Dispatcher:   bot.New(engine, lex, cfg.ResourcesDir, logger),
		AuthService:  authService,
		Lexicon:      lex,
		logger:       logger,
	}
	if !gameCfg.WriteThrough {
		app.Flusher = game.NewFlusher(engine, gameCfg.FlushInterval, logger)
	}
	return app, nil
}

// Close flushes pending players and releases the storage backend
func (a *App) Close(ctx context.Context) error {
	flushErr := a.Engine.Close(ctx)
	if flushErr != nil {
		a.logger.Error("flush on close failed", slog.String("error", flushErr.Error()))
	}
	return errors.Join(flushErr, a.Storage.Close())
}
