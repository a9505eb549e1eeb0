package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	return decodePlayer(data)
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, bool, error) {
	data, err := json.Marshal(player)
	if err != nil {
		return nil, false, err
	}

	// SETNX keeps an existing record intact
	created, err := s.client.SetNX(ctx, playerKey(player.ID), data, s.cfg.PlayerTTL).Result()
	if err != nil {
		return nil, false, err
	}
	if created {
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

	pipe := s.client.Pipeline()
	for _, p := range players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		pipe.Set(ctx, playerKey(p.ID), data, s.cfg.PlayerTTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func decodePlayer(data []byte) (*model.Player, error) {
	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	if player.GuessedFilms == nil {
		player.GuessedFilms = []model.FilmID{}
	}
	return &player, nil
}
