package memory

import (
	"context"
	"testing"

	"github.com/mcoot/guessfilm/internal/model"
	"github.com/stretchr/testify/suite"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestCreateAndGetPlayer() {
	player, created, err := s.storage.CreatePlayer(s.ctx, model.NewPlayer(1))
	s.Require().NoError(err)
	s.True(created)
	s.Equal(model.PlayerID(1), player.ID)

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(player, retrieved)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, 404)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestCreatePlayerReturnsExisting() {
	existing := &model.Player{ID: 1, Score: 12, GuessedFilms: []model.FilmID{3}}
	s.Require().NoError(s.storage.SavePlayers(s.ctx, []*model.Player{existing}))

	player, created, err := s.storage.CreatePlayer(s.ctx, model.NewPlayer(1))
	s.Require().NoError(err)
	s.False(created)
	s.Equal(12, player.Score)
	s.Equal([]model.FilmID{3}, player.GuessedFilms)
}

func (s *StorageSuite) TestSavePlayersUpserts() {
	film := model.FilmID(2)
	_, _, _ = s.storage.CreatePlayer(s.ctx, model.NewPlayer(1))

	err := s.storage.SavePlayers(s.ctx, []*model.Player{
		{ID: 1, CurrentFilm: &film, Attempts: 3, Score: 5, GuessedFilms: []model.FilmID{}},
		{ID: 2, Score: -5, GuessedFilms: []model.FilmID{}},
	})
	s.Require().NoError(err)

	p1, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().NotNil(p1.CurrentFilm)
	s.Equal(film, *p1.CurrentFilm)
	s.Equal(5, p1.Score)

	p2, err := s.storage.GetPlayer(s.ctx, 2)
	s.Require().NoError(err)
	s.Equal(-5, p2.Score)
}

func (s *StorageSuite) TestSavePlayersEmptyIsNoop() {
	s.Require().NoError(s.storage.SavePlayers(s.ctx, nil))
	s.Require().NoError(s.storage.SavePlayers(s.ctx, []*model.Player{}))
	s.Equal(0, s.storage.Writes())
	s.Equal(0, s.storage.Len())
}

func (s *StorageSuite) TestStoredPlayersAreIsolatedFromCallers() {
	p := model.NewPlayer(1)
	_, _, _ = s.storage.CreatePlayer(s.ctx, p)

	p.Score = 100
	p.GuessedFilms = append(p.GuessedFilms, 9)

	retrieved, err := s.storage.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(0, retrieved.Score)
	s.Empty(retrieved.GuessedFilms)
}
