package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/storage"
)

// Storage is a MongoDB-backed implementation of the storage interface.
// Each player is one document keyed by its id.
type Storage struct {
	client     *mongo.Client
	collection *mongo.Collection
	ownsClient bool
}

// New connects to MongoDB and verifies the connection
func New(ctx context.Context, cfg Config) (*Storage, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := NewWithClient(client, cfg)
	s.ownsClient = true
	return s, nil
}

// NewWithClient creates a storage on an existing client (for testing)
func NewWithClient(client *mongo.Client, cfg Config) *Storage {
	return &Storage{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}
}

// Close disconnects the client if this storage created it
func (s *Storage) Close() error {
	if !s.ownsClient {
		return nil
	}
	return s.client.Disconnect(context.Background())
}

// Ensure Storage implements the interface
var _ storage.PlayerStore = (*Storage)(nil)

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&player)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}
	if player.GuessedFilms == nil {
		player.GuessedFilms = []model.FilmID{}
	}
	return &player, nil
}

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) (*model.Player, bool, error) {
	existing, err := s.GetPlayer(ctx, player.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, false, err
	}

	if _, err := s.collection.InsertOne(ctx, player); err != nil {
		// Lost a race with another writer; theirs wins
		if mongo.IsDuplicateKeyError(err) {
			existing, err := s.GetPlayer(ctx, player.ID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}
	return player, true, nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	if len(players) == 0 {
		return nil
	}

	writes := make([]mongo.WriteModel, 0, len(players))
	for _, p := range players {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": p.ID}).
			SetReplacement(p).
			SetUpsert(true))
	}

	_, err := s.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}
