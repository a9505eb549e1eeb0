package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id            BIGINT PRIMARY KEY,
	current_film  BIGINT NULL,
	guessed_films BIGINT[] NOT NULL DEFAULT '{}',
	attempts      INTEGER NOT NULL DEFAULT 0,
	score         INTEGER NOT NULL DEFAULT 0
)`

const selectPlayer = `SELECT id, current_film, guessed_films, attempts, score FROM players WHERE id = $1`

const insertPlayer = `
INSERT INTO players (id, current_film, guessed_films, attempts, score)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO NOTHING`

const upsertPlayer = `
INSERT INTO players (id, current_film, guessed_films, attempts, score)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	current_film = EXCLUDED.current_film,
	guessed_films = EXCLUDED.guessed_films,
	attempts = EXCLUDED.attempts,
	score = EXCLUDED.score`

// Storage is a PostgreSQL-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and applies the schema
func New(ctx context.Context, url string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &Storage{pool: pool}
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the players table if it does not exist
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate players table: %w", err)
	}
	return nil
}

// Close releases the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var (
		p       model.Player
		id64    int64
		current *int64
		guessed []int64
	)
	err := s.pool.QueryRow(ctx, selectPlayer, int64(id)).Scan(&id64, &current, &guessed, &p.Attempts, &p.Score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	p.ID = model.PlayerID(id64)
	if current != nil {
		film := model.FilmID(*current)
		p.CurrentFilm = &film
	}
	p.GuessedFilms = make([]model.FilmID, 0, len(guessed))
	for _, g := range guessed {
		p.GuessedFilms = append(p.GuessedFilms, model.FilmID(g))
	}
	return &p, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, bool, error) {
	tag, err := s.pool.Exec(ctx, insertPlayer, playerArgs(player)...)
	if err != nil {
		return nil, false, err
	}
	if tag.RowsAffected() == 1 {
		return player, true, nil
	}

	existing, err := s.GetPlayer(ctx, player.ID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	if len(players) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, p := range players {
		batch.Queue(upsertPlayer, playerArgs(p)...)
	}
	return s.pool.SendBatch(ctx, batch).Close()
}

func playerArgs(p *model.Player) []any {
	var current *int64
	if p.CurrentFilm != nil {
		id := int64(*p.CurrentFilm)
		current = &id
	}
	guessed := make([]int64, 0, len(p.GuessedFilms))
	for _, g := range p.GuessedFilms {
		guessed = append(guessed, int64(g))
	}
	return []any{int64(p.ID), current, guessed, p.Attempts, p.Score}
}
