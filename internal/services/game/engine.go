package game

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/storage"
)

// Outcome is the result class of a single guess
type Outcome string

const (
	OutcomeWin       Outcome = "win"
	OutcomeLose      Outcome = "lose"
	OutcomeIncorrect Outcome = "incorrect" // round continues
)

// GuessResult describes what a guess did. Film is set when the round ended
// (win or lose); Hint is set when it continues.
type GuessResult struct {
	Outcome      Outcome
	Film         *model.Film
	Hint         Hint
	AttemptsLeft int
	ScoreDelta   int
}

// PlayerStats is a read-only snapshot of a player's progress
type PlayerStats struct {
	PlayerID     model.PlayerID
	Score        int
	GuessedFilms int
	InRound      bool
	AttemptsLeft int
}

// Engine owns the film catalog and the player cache, and runs the round
// lifecycle. The cache is authoritative while the process runs; the store
// is a write-behind backing copy.
type Engine struct {
	films     []model.Film
	filmIndex map[model.FilmID]int
	store     storage.PlayerStore
	cfg       Config
	logger    *slog.Logger

	// mu serialises all cache access and mutation
	mu      sync.Mutex
	players map[model.PlayerID]*model.Player
	dirty   map[model.PlayerID]struct{}
}

// New creates an Engine over a non-empty catalog
func New(films []model.Film, store storage.PlayerStore, cfg Config, logger *slog.Logger) (*Engine, error) {
	if len(films) == 0 {
		return nil, model.ErrEmptyCatalog
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	index := make(map[model.FilmID]int, len(films))
	for i, f := range films {
		if _, dup := index[f.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate film id %d", model.ErrCatalogMalformed, f.ID)
		}
		index[f.ID] = i
	}

	return &Engine{
		films:     slices.Clone(films),
		filmIndex: index,
		store:     store,
		cfg:       cfg,
		logger:    logger,
		players:   make(map[model.PlayerID]*model.Player),
		dirty:     make(map[model.PlayerID]struct{}),
	}, nil
}

// Config returns the engine's settings
func (e *Engine) Config() Config {
	return e.cfg
}

// Films returns the catalog in its stable order
func (e *Engine) Films() []model.Film {
	return slices.Clone(e.films)
}

// Film looks up a catalog entry
func (e *Engine) Film(id model.FilmID) (*model.Film, error) {
	i, ok := e.filmIndex[id]
	if !ok {
		return nil, model.ErrFilmNotFound
	}
	return &e.films[i], nil
}

// GetOrCreatePlayer resolves a player through the cache, falling back to the
// store and finally creating a fresh record. The result is a snapshot; the
// cached instance is only ever mutated under the engine lock.
func (e *Engine) GetOrCreatePlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.getOrCreatePlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (e *Engine) getOrCreatePlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if p, ok := e.players[id]; ok {
		return p, nil
	}

	p, err := e.store.GetPlayer(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrPlayerNotFound) {
			return nil, fmt.Errorf("load player %d: %w", id, err)
		}
		var created bool
		p, created, err = e.store.CreatePlayer(ctx, model.NewPlayer(id))
		if err != nil {
			return nil, fmt.Errorf("create player %d: %w", id, err)
		}
		if created {
			e.logger.Info("player created", slog.Int64("player_id", int64(id)))
		}
	}

	e.players[id] = p
	return p, nil
}

// lookupPlayer resolves a player through the cache and the store without
// creating one
func (e *Engine) lookupPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	if p, ok := e.players[id]; ok {
		return p, nil
	}

	p, err := e.store.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("load player %d: %w", id, err)
	}

	e.players[id] = p
	return p, nil
}

// StartRound assigns the first catalog film the player has not solved and
// resets their attempts. A round already in progress is replaced.
func (e *Engine) StartRound(ctx context.Context, id model.PlayerID) (*model.Film, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.getOrCreatePlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	film := e.nextFilm(p)
	filmID := film.ID
	p.CurrentFilm = &filmID
	p.Attempts = e.cfg.MaxAttempts

	e.logger.Info("round started",
		slog.Int64("player_id", int64(id)),
		slog.Int64("film_id", int64(filmID)),
	)

	e.persist(ctx, p)
	return film, nil
}

// nextFilm returns the first unsolved film. When every film is solved the
// player's progress resets and the catalog starts over.
func (e *Engine) nextFilm(p *model.Player) *model.Film {
	for i := range e.films {
		if !p.HasGuessed(e.films[i].ID) {
			return &e.films[i]
		}
	}

	e.logger.Info("catalog exhausted, resetting guessed films", slog.Int64("player_id", int64(p.ID)))
	p.GuessedFilms = []model.FilmID{}
	return &e.films[0]
}

// SubmitGuess checks an answer against the player's current film
func (e *Engine) SubmitGuess(ctx context.Context, id model.PlayerID, answer string) (GuessResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, film, err := e.activeRound(ctx, id)
	if err != nil {
		return GuessResult{}, err
	}

	p.Attempts--
	if p.Attempts < 0 {
		delta := e.resolveLoss(ctx, p)
		e.logger.Info("round lost",
			slog.Int64("player_id", int64(id)),
			slog.Int64("film_id", int64(film.ID)),
		)
		return GuessResult{Outcome: OutcomeLose, Film: film, AttemptsLeft: p.Attempts, ScoreDelta: delta}, nil
	}

	if !MatchAnswer(answer, film.Name) {
		e.persist(ctx, p)
		return GuessResult{
			Outcome:      OutcomeIncorrect,
			Hint:         HintFor(e.cfg.Hints, film, p.Attempts, e.cfg.MaxAttempts),
			AttemptsLeft: p.Attempts,
		}, nil
	}

	delta := e.cfg.WinBase + p.Attempts*e.cfg.WinPerAttempt
	p.GuessedFilms = append(p.GuessedFilms, film.ID)
	p.CurrentFilm = nil
	p.Score += delta

	e.logger.Info("round won",
		slog.Int64("player_id", int64(id)),
		slog.Int64("film_id", int64(film.ID)),
		slog.Int("score_delta", delta),
	)

	e.persist(ctx, p)
	return GuessResult{Outcome: OutcomeWin, Film: film, AttemptsLeft: p.Attempts, ScoreDelta: delta}, nil
}

// Surrender ends the round as a loss and reveals the film. The film is not
// marked as solved, so it can come up again.
func (e *Engine) Surrender(ctx context.Context, id model.PlayerID) (*model.Film, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, film, err := e.activeRound(ctx, id)
	if err != nil {
		return nil, err
	}

	e.resolveLoss(ctx, p)
	e.logger.Info("round surrendered",
		slog.Int64("player_id", int64(id)),
		slog.Int64("film_id", int64(film.ID)),
	)
	return film, nil
}

// Cancel abandons the round without any score change
func (e *Engine) Cancel(ctx context.Context, id model.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, _, err := e.activeRound(ctx, id)
	if err != nil {
		return err
	}

	p.CurrentFilm = nil
	e.logger.Info("round cancelled", slog.Int64("player_id", int64(id)))
	e.persist(ctx, p)
	return nil
}

// Stats returns a snapshot of the player's progress. Unknown players are
// not created; model.ErrPlayerNotFound is returned instead.
func (e *Engine) Stats(ctx context.Context, id model.PlayerID) (PlayerStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.lookupPlayer(ctx, id)
	if err != nil {
		return PlayerStats{}, err
	}

	stats := PlayerStats{
		PlayerID:     p.ID,
		Score:        p.Score,
		GuessedFilms: len(p.GuessedFilms),
		InRound:      p.InRound(),
	}
	if p.InRound() {
		stats.AttemptsLeft = p.Attempts
	}
	return stats, nil
}

// activeRound resolves the player and their current film, or returns
// model.ErrNotInRound. A round pointing at a film that is no longer in the
// catalog is dropped.
func (e *Engine) activeRound(ctx context.Context, id model.PlayerID) (*model.Player, *model.Film, error) {
	p, err := e.getOrCreatePlayer(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !p.InRound() {
		return nil, nil, model.ErrNotInRound
	}

	film, err := e.Film(*p.CurrentFilm)
	if err != nil {
		e.logger.Warn("dropping round for film missing from catalog",
			slog.Int64("player_id", int64(id)),
			slog.Int64("film_id", int64(*p.CurrentFilm)),
		)
		p.CurrentFilm = nil
		e.persist(ctx, p)
		return nil, nil, model.ErrNotInRound
	}
	return p, film, nil
}

// resolveLoss applies the surrender penalty and closes the round. Returns
// the score delta.
func (e *Engine) resolveLoss(ctx context.Context, p *model.Player) int {
	p.CurrentFilm = nil
	p.Score -= e.cfg.SurrenderPenalty
	e.persist(ctx, p)
	return -e.cfg.SurrenderPenalty
}

// persist marks the player dirty and, in write-through mode, saves it now.
// A failed write leaves the player dirty for the next FlushAll; the cache
// stays authoritative either way.
func (e *Engine) persist(ctx context.Context, p *model.Player) {
	e.players[p.ID] = p
	e.dirty[p.ID] = struct{}{}

	if !e.cfg.WriteThrough {
		return
	}
	if err := e.store.SavePlayers(ctx, []*model.Player{p}); err != nil {
		e.logger.Warn("write-through failed, player left dirty",
			slog.Int64("player_id", int64(p.ID)),
			slog.String("error", err.Error()),
		)
		return
	}
	delete(e.dirty, p.ID)
}

// Flush persists the given players in one batch. A player that is cached is
// written from the cache, so a stale record passed in never overwrites newer
// state.
func (e *Engine) Flush(ctx context.Context, players []*model.Player) error {
	if len(players) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	batch := make([]*model.Player, 0, len(players))
	queued := make(map[model.PlayerID]struct{}, len(players))
	for _, p := range players {
		if _, dup := queued[p.ID]; dup {
			continue
		}
		queued[p.ID] = struct{}{}
		if cached, ok := e.players[p.ID]; ok {
			p = cached
		}
		batch = append(batch, p)
	}
	return e.flush(ctx, batch)
}

func (e *Engine) flush(ctx context.Context, players []*model.Player) error {
	if err := e.store.SavePlayers(ctx, players); err != nil {
		return fmt.Errorf("save %d players: %w", len(players), err)
	}
	for _, p := range players {
		if e.players[p.ID] == p {
			delete(e.dirty, p.ID)
		}
	}
	return nil
}

// FlushPlayer persists a single cached player
func (e *Engine) FlushPlayer(ctx context.Context, id model.PlayerID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.players[id]
	if !ok {
		return model.ErrPlayerNotFound
	}
	return e.flush(ctx, []*model.Player{p})
}

// FlushAll persists every cached player with unsaved changes
func (e *Engine) FlushAll(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(e.dirty) == 0 {
		return nil
	}

	players := make([]*model.Player, 0, len(e.dirty))
	for id := range e.dirty {
		players = append(players, e.players[id])
	}
	slices.SortFunc(players, func(a, b *model.Player) int {
		return cmp.Compare(a.ID, b.ID)
	})

	if err := e.flush(ctx, players); err != nil {
		return err
	}
	e.logger.Info("players flushed", slog.Int("count", len(players)))
	return nil
}

// Pending returns the number of cached players with unsaved changes
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.dirty)
}

// Close flushes outstanding changes. Call it on graceful shutdown.
func (e *Engine) Close(ctx context.Context) error {
	return e.FlushAll(ctx)
}

// MatchAnswer compares a guess with a film name ignoring case and
// surrounding whitespace
func MatchAnswer(answer, name string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(name))
}

// EngineInterface is the surface consumed by transports
type EngineInterface interface {
	GetOrCreatePlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	StartRound(ctx context.Context, id model.PlayerID) (*model.Film, error)
	SubmitGuess(ctx context.Context, id model.PlayerID, answer string) (GuessResult, error)
	Surrender(ctx context.Context, id model.PlayerID) (*model.Film, error)
	Cancel(ctx context.Context, id model.PlayerID) error
	Stats(ctx context.Context, id model.PlayerID) (PlayerStats, error)
	Film(id model.FilmID) (*model.Film, error)
	Flush(ctx context.Context, players []*model.Player) error
	FlushPlayer(ctx context.Context, id model.PlayerID) error
	FlushAll(ctx context.Context) error
}

var _ EngineInterface = (*Engine)(nil)
