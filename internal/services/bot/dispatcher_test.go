package bot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mcoot/guessfilm/internal/lexicon"
	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/services/game"
	"github.com/mcoot/guessfilm/internal/storage/memory"
	"github.com/mcoot/guessfilm/internal/testutil"
	"github.com/stretchr/testify/suite"
)

const player = model.PlayerID(100)

type DispatcherSuite struct {
	suite.Suite
	engine       *game.Engine
	lex          *lexicon.Lexicon
	resourcesDir string
	dispatcher   *Dispatcher
	ctx          context.Context
}

func TestDispatcherSuite(t *testing.T) {
	suite.Run(t, new(DispatcherSuite))
}

func (s *DispatcherSuite) SetupTest() {
	s.ctx = context.Background()

	engine, err := game.New(testutil.Films(), memory.New(), game.DefaultConfig(), testutil.NopLogger())
	s.Require().NoError(err)
	s.engine = engine

	s.lex, err = lexicon.For(lexicon.English)
	s.Require().NoError(err)

	// only film 1 has an image on disk
	s.resourcesDir = s.T().TempDir()
	s.Require().NoError(os.MkdirAll(filepath.Join(s.resourcesDir, "images"), 0o755))
	s.Require().NoError(os.WriteFile(filepath.Join(s.resourcesDir, "images", "1.jpg"), []byte("jpeg"), 0o644))

	s.dispatcher = New(s.engine, s.lex, s.resourcesDir, testutil.NopLogger())
}

func (s *DispatcherSuite) send(text string) []Reply {
	replies, err := s.dispatcher.Handle(s.ctx, Message{PlayerID: player, Text: text})
	s.Require().NoError(err)
	s.Require().NotEmpty(replies)
	return replies
}

func (s *DispatcherSuite) inRound() bool {
	stats, err := s.engine.Stats(s.ctx, player)
	s.Require().NoError(err)
	return stats.InRound
}

// Not in round

func (s *DispatcherSuite) TestStartWelcomes() {
	replies := s.send("/start")

	s.Equal(s.lex.Welcome, replies[0].Text)
	s.Equal(s.lex.IdleKeyboard, replies[0].Keyboard)
}

func (s *DispatcherSuite) TestStartWithBotSuffix() {
	replies := s.send("/start@guessfilm_bot")
	s.Equal(s.lex.Welcome, replies[0].Text)
}

func (s *DispatcherSuite) TestHelpOutsideRound() {
	replies := s.send("/help")
	s.Equal(s.lex.Help, replies[0].Text)
}

func (s *DispatcherSuite) TestPlaySendsImage() {
	replies := s.send("/play")

	s.Require().Len(replies, 1)
	s.Require().NotNil(replies[0].Image)
	s.Equal(model.FilmID(1), replies[0].Image.FilmID)
	s.Equal(filepath.Join(s.resourcesDir, "images", "1.jpg"), replies[0].Image.Path)
	s.Equal(s.lex.InRoundKeyboard, replies[0].Keyboard)
	s.True(s.inRound())
}

func (s *DispatcherSuite) TestPlayWithMissingImageStillStartsRound() {
	s.send("/play")
	s.send("Forrest Gump")

	replies := s.send("/play")

	s.Nil(replies[0].Image)
	s.Equal(s.lex.NoImage, replies[0].Text)
	s.True(s.inRound())
}

func (s *DispatcherSuite) TestStatOutsideRound() {
	replies := s.send("/stat")
	s.Equal("Score: 0\nFilms guessed: 0", replies[0].Text)
}

func (s *DispatcherSuite) TestRoundCommandsWarnOutsideRound() {
	for _, cmd := range []string{"/surrender", "/sur", "/cancel"} {
		replies := s.send(cmd)
		s.Equal(s.lex.OnlyInRound, replies[0].Text, cmd)
	}
}

func (s *DispatcherSuite) TestPlainTextOutsideRoundFallsBack() {
	replies := s.send("Forrest Gump")
	s.Equal(s.lex.Fallback, replies[0].Text)
	s.False(s.inRound())
}

// In round

func (s *DispatcherSuite) TestIdleCommandsWarnInRound() {
	s.send("/play")

	for _, cmd := range []string{"/start", "/stat", "/play"} {
		replies := s.send(cmd)
		s.Equal(s.lex.OnlyOutsideRound, replies[0].Text, cmd)
	}
	s.True(s.inRound())
}

func (s *DispatcherSuite) TestHelpInRound() {
	s.send("/play")
	replies := s.send("/help")
	s.Equal(s.lex.Help, replies[0].Text)
	s.True(s.inRound())
}

func (s *DispatcherSuite) TestWrongGuessGivesHint() {
	s.send("/play")

	replies := s.send("Titanic")

	s.Equal("Wrong. Hint: the genre is Drama", replies[0].Text)
	s.True(s.inRound())
}

func (s *DispatcherSuite) TestCorrectGuessWins() {
	s.send("/play")

	replies := s.send("  forrest GUMP")

	s.Require().Len(replies, 2)
	s.Equal(s.lex.Win, replies[0].Text)
	film, err := s.engine.Film(1)
	s.Require().NoError(err)
	s.Equal(film.Explain(), replies[1].Text)
	s.Equal(s.lex.IdleKeyboard, replies[1].Keyboard)
	s.False(s.inRound())
}

func (s *DispatcherSuite) TestRunningOutOfAttemptsLoses() {
	s.send("/play")
	for i := 0; i < 3; i++ {
		s.send("wrong")
	}

	replies := s.send("wrong")

	s.Require().Len(replies, 2)
	s.Equal(s.lex.Lose, replies[0].Text)
	s.False(s.inRound())
}

func (s *DispatcherSuite) TestSurrenderRevealsFilm() {
	for _, cmd := range []string{"/surrender", "/sur"} {
		s.send("/play")

		replies := s.send(cmd)

		film, err := s.engine.Film(1)
		s.Require().NoError(err)
		s.Equal(film.Explain(), replies[0].Text)
		s.False(s.inRound())
	}
}

func (s *DispatcherSuite) TestCancelLeavesGame() {
	s.send("/play")

	replies := s.send("/cancel")

	s.Equal(s.lex.LeftGame, replies[0].Text)
	s.False(s.inRound())
	stats, err := s.engine.Stats(s.ctx, player)
	s.Require().NoError(err)
	s.Equal(0, stats.Score)
}

func (s *DispatcherSuite) TestUnknownCommandInRoundIsAGuess() {
	s.send("/play")

	replies := s.send("/unknown")

	s.Equal("Wrong. Hint: the genre is Drama", replies[0].Text)
}

func (s *DispatcherSuite) TestParseCommand() {
	s.Equal("", parseCommand(""))
	s.Equal("", parseCommand("The Matrix"))
	s.Equal("/play", parseCommand("  /play now"))
	s.Equal("/stat", parseCommand("/stat@bot"))
}
