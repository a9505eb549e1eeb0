package factory

import (
	"io"
	"log/slog"

	"github.com/mcoot/guessfilm/internal/dependencies/mocks"
	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Store is the in-memory backend, exposed for assertions
	Store *memory.Storage
	// MockRandom controls generated API keys
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App over the given catalog with in-memory storage
// and mocked dependencies. cfg.Films and cfg.FilmsFile are ignored.
func NewTestApp(films []model.Film, cfg Config) (*TestApp, error) {
	store := memory.New()
	mockRandom := mocks.NewMockRandom()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	app, err := newWithDependencies(store, films, cfg, mockRandom, logger)
	if err != nil {
		return nil, err
	}

	return &TestApp{
		App:        app,
		Store:      store,
		MockRandom: mockRandom,
	}, nil
}
