package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/services/bot"
	"github.com/mcoot/guessfilm/internal/services/game"
	"github.com/mcoot/guessfilm/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	app, err := NewTestApp(testutil.Films(), Config{})
	s.Require().NoError(err)
	s.app = app
	s.ctx = context.Background()
}

func (s *IntegrationSuite) send(id model.PlayerID, text string) []bot.Reply {
	replies, err := s.app.Dispatcher.Handle(s.ctx, bot.Message{PlayerID: id, Text: text})
	s.Require().NoError(err)
	return replies
}

// Test: a player works through the whole catalog and wraps around
func (s *IntegrationSuite) TestCompleteCatalogFlow() {
	const player = model.PlayerID(1)

	s.send(player, "/start")
	s.Equal(1, s.app.Store.Len())

	// Film 1: first-attempt win
	s.send(player, "/play")
	replies := s.send(player, "Forrest Gump")
	s.Equal(s.app.Lexicon.Win, replies[0].Text)

	// Film 2: surrender
	s.send(player, "/play")
	s.send(player, "/sur")

	// Film 2 again, won on the last attempt
	s.send(player, "/play")
	s.send(player, "Neo")
	s.send(player, "Trinity")
	replies = s.send(player, "the matrix")
	s.Equal(s.app.Lexicon.Win, replies[0].Text)

	// Film 3: cancel, then win
	s.send(player, "/play")
	s.send(player, "/cancel")
	s.send(player, "/play")
	s.send(player, "Alien")

	stored, err := s.app.Store.GetPlayer(s.ctx, player)
	s.Require().NoError(err)
	s.Equal(9-5+5+9, stored.Score)
	s.Equal([]model.FilmID{1, 2, 3}, stored.GuessedFilms)

	// Catalog exhausted: progress resets and film 1 comes up again
	s.send(player, "/play")
	stored, err = s.app.Store.GetPlayer(s.ctx, player)
	s.Require().NoError(err)
	s.Empty(stored.GuessedFilms)
	s.Require().NotNil(stored.CurrentFilm)
	s.Equal(model.FilmID(1), *stored.CurrentFilm)
}

// Test: players do not share round state
func (s *IntegrationSuite) TestPlayersAreIndependent() {
	s.send(1, "/play")
	s.send(1, "Forrest Gump")

	s.send(2, "/play")
	replies := s.send(2, "wrong")
	s.Equal("Wrong. Hint: the genre is Drama", replies[0].Text)

	stats1, err := s.app.Engine.Stats(s.ctx, 1)
	s.Require().NoError(err)
	stats2, err := s.app.Engine.Stats(s.ctx, 2)
	s.Require().NoError(err)

	s.Equal(9, stats1.Score)
	s.False(stats1.InRound)
	s.Equal(0, stats2.Score)
	s.True(stats2.InRound)
}

// Test: batched mode only persists on flush and on close
func (s *IntegrationSuite) TestBatchedPersistence() {
	cfg := game.DefaultConfig()
	cfg.WriteThrough = false
	app, err := NewTestApp(testutil.Films(), Config{Game: cfg})
	s.Require().NoError(err)
	s.Require().NotNil(app.Flusher)

	_, err = app.Dispatcher.Handle(s.ctx, bot.Message{PlayerID: 1, Text: "/play"})
	s.Require().NoError(err)

	stored, err := app.Store.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.False(stored.InRound())

	s.Require().NoError(app.Close(s.ctx))

	stored, err = app.Store.GetPlayer(s.ctx, 1)
	s.Require().NoError(err)
	s.True(stored.InRound())
}

func (s *IntegrationSuite) TestRussianLexicon() {
	app, err := NewTestApp(testutil.Films(), Config{Language: "ru"})
	s.Require().NoError(err)

	replies, err := app.Dispatcher.Handle(s.ctx, bot.Message{PlayerID: 1, Text: "hello"})
	s.Require().NoError(err)
	s.Equal("Я играю только по правилам, введите /help, чтобы узнать правила.", replies[0].Text)
}

func (s *IntegrationSuite) TestUnknownLanguageFails() {
	_, err := NewTestApp(testutil.Films(), Config{Language: "xx"})
	s.Error(err)
}

func (s *IntegrationSuite) TestNewLoadsCatalogFile() {
	dir := s.T().TempDir()
	path := filepath.Join(dir, "films.json")
	s.Require().NoError(os.WriteFile(path, []byte(`[{"id": 7, "name": "Heat", "year": 1995, "genre": "Crime"}]`), 0o644))

	app, err := New(s.ctx, Config{FilmsFile: path, StorageType: "memory"})
	s.Require().NoError(err)
	defer app.Close(s.ctx)

	s.Len(app.Films, 1)
	s.Nil(app.Flusher)
}

func (s *IntegrationSuite) TestNewRejectsMissingCatalog() {
	_, err := New(s.ctx, Config{FilmsFile: filepath.Join(s.T().TempDir(), "missing.json")})
	s.ErrorIs(err, model.ErrCatalogMissing)
}

func (s *IntegrationSuite) TestNewRejectsEmptyCatalog() {
	_, err := New(s.ctx, Config{Films: []model.Film{}})
	s.ErrorIs(err, model.ErrEmptyCatalog)
}

func (s *IntegrationSuite) TestNewRejectsUnknownStorage() {
	_, err := New(s.ctx, Config{Films: testutil.Films(), StorageType: "sqlite"})
	s.Error(err)
}
