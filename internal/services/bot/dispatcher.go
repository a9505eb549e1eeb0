// Package bot turns chat messages into engine operations and engine results
// into chat replies.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mcoot/guessfilm/internal/lexicon"
	"github.com/mcoot/guessfilm/internal/model"
	"github.com/mcoot/guessfilm/internal/services/catalog"
	"github.com/mcoot/guessfilm/internal/services/game"
)

// Commands understood by the dispatcher
const (
	CommandStart     = "/start"
	CommandPlay      = "/play"
	CommandStat      = "/stat"
	CommandHelp      = "/help"
	CommandSurrender = "/surrender"
	CommandSur       = "/sur"
	CommandCancel    = "/cancel"
)

// Message is an inbound chat message
type Message struct {
	PlayerID model.PlayerID
	Text     string
}

// Image is a film still to send alongside a reply
type Image struct {
	FilmID model.FilmID
	Path   string
}

// Reply is one outbound chat message. Keyboard, when set, replaces the
// player's reply keyboard.
type Reply struct {
	Text     string
	Image    *Image
	Keyboard []string
}

type handlerFunc func(ctx context.Context, msg Message) ([]Reply, error)

// Dispatcher routes messages by command and by whether the player is in a
// round
type Dispatcher struct {
	engine       game.EngineInterface
	lex          *lexicon.Lexicon
	resourcesDir string
	logger       *slog.Logger

	idle    map[string]handlerFunc
	inRound map[string]handlerFunc
}

// New creates a Dispatcher. Film image paths are resolved against
// resourcesDir.
func New(engine game.EngineInterface, lex *lexicon.Lexicon, resourcesDir string, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		engine:       engine,
		lex:          lex,
		resourcesDir: resourcesDir,
		logger:       logger,
	}

	d.idle = map[string]handlerFunc{
		CommandStart:     d.handleStart,
		CommandPlay:      d.handlePlay,
		CommandStat:      d.handleStat,
		CommandHelp:      d.handleHelp,
		CommandSurrender: d.warn(lex.OnlyInRound),
		CommandSur:       d.warn(lex.OnlyInRound),
		CommandCancel:    d.warn(lex.OnlyInRound),
	}
	d.inRound = map[string]handlerFunc{
		CommandSurrender: d.handleSurrender,
		CommandSur:       d.handleSurrender,
		CommandCancel:    d.handleCancel,
		CommandHelp:      d.handleHelp,
		CommandStart:     d.warn(lex.OnlyOutsideRound),
		CommandStat:      d.warn(lex.OnlyOutsideRound),
		CommandPlay:      d.warn(lex.OnlyOutsideRound),
	}

	return d
}

// Handle processes one message and returns the replies to send, in order
func (d *Dispatcher) Handle(ctx context.Context, msg Message) ([]Reply, error) {
	player, err := d.engine.GetOrCreatePlayer(ctx, msg.PlayerID)
	if err != nil {
		return nil, err
	}

	cmd := parseCommand(msg.Text)
	d.logger.Debug("dispatching message",
		slog.Int64("player_id", int64(msg.PlayerID)),
		slog.String("command", cmd),
		slog.Bool("in_round", player.InRound()),
	)

	if player.InRound() {
		if h, ok := d.inRound[cmd]; ok {
			return h(ctx, msg)
		}
		return d.handleGuess(ctx, msg)
	}

	if h, ok := d.idle[cmd]; ok {
		return h(ctx, msg)
	}
	return d.idleReply(d.lex.Fallback), nil
}

// parseCommand returns the command word of a message, or "" for plain text.
// A "@botname" suffix is dropped.
func parseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd
}

func (d *Dispatcher) handleStart(ctx context.Context, msg Message) ([]Reply, error) {
	if _, err := d.engine.GetOrCreatePlayer(ctx, msg.PlayerID); err != nil {
		return nil, err
	}
	return d.idleReply(d.lex.Welcome), nil
}

func (d *Dispatcher) handleHelp(ctx context.Context, msg Message) ([]Reply, error) {
	return []Reply{{Text: d.lex.Help}}, nil
}

func (d *Dispatcher) handleStat(ctx context.Context, msg Message) ([]Reply, error) {
	stats, err := d.engine.Stats(ctx, msg.PlayerID)
	if err != nil {
		return nil, err
	}
	return []Reply{{Text: d.lex.StatsText(stats)}}, nil
}

func (d *Dispatcher) handlePlay(ctx context.Context, msg Message) ([]Reply, error) {
	film, err := d.engine.StartRound(ctx, msg.PlayerID)
	if err != nil {
		return nil, err
	}

	path, ok := catalog.ResolveImage(d.resourcesDir, film)
	if !ok {
		d.logger.Warn("film image missing",
			slog.Int64("film_id", int64(film.ID)),
			slog.String("path", path),
		)
		return []Reply{{Text: d.lex.NoImage, Keyboard: d.lex.InRoundKeyboard}}, nil
	}

	return []Reply{{
		Image:    &Image{FilmID: film.ID, Path: path},
		Keyboard: d.lex.InRoundKeyboard,
	}}, nil
}

func (d *Dispatcher) handleGuess(ctx context.Context, msg Message) ([]Reply, error) {
	result, err := d.engine.SubmitGuess(ctx, msg.PlayerID, msg.Text)
	if err != nil {
		return d.notInRound(err)
	}

	switch result.Outcome {
	case game.OutcomeWin:
		return d.reveal(d.lex.Win, result.Film), nil
	case game.OutcomeLose:
		return d.reveal(d.lex.Lose, result.Film), nil
	default:
		return []Reply{{Text: d.lex.HintText(result.Hint)}}, nil
	}
}

func (d *Dispatcher) handleSurrender(ctx context.Context, msg Message) ([]Reply, error) {
	film, err := d.engine.Surrender(ctx, msg.PlayerID)
	if err != nil {
		return d.notInRound(err)
	}
	return d.idleReply(film.Explain()), nil
}

func (d *Dispatcher) handleCancel(ctx context.Context, msg Message) ([]Reply, error) {
	if err := d.engine.Cancel(ctx, msg.PlayerID); err != nil {
		return d.notInRound(err)
	}
	return d.idleReply(d.lex.LeftGame), nil
}

// notInRound turns a round that ended concurrently into the usual warning
func (d *Dispatcher) notInRound(err error) ([]Reply, error) {
	if errors.Is(err, model.ErrNotInRound) {
		return d.idleReply(d.lex.OnlyInRound), nil
	}
	return nil, err
}

func (d *Dispatcher) warn(text string) handlerFunc {
	return func(ctx context.Context, msg Message) ([]Reply, error) {
		return []Reply{{Text: text}}, nil
	}
}

func (d *Dispatcher) reveal(outcome string, film *model.Film) []Reply {
	return []Reply{
		{Text: outcome},
		{Text: film.Explain(), Keyboard: d.lex.IdleKeyboard},
	}
}

func (d *Dispatcher) idleReply(text string) []Reply {
	return []Reply{{Text: text, Keyboard: d.lex.IdleKeyboard}}
}
