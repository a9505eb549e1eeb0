// Package lexicon holds the user-facing bot texts for each supported language.
package lexicon

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/guessfilm/internal/services/game"
)

// ErrUnknownLanguage is returned for a language without a lexicon
var ErrUnknownLanguage = errors.New("unknown language")

// Language codes
const (
	English = "en"
	Russian = "ru"
)

// Lexicon is the full set of texts the dispatcher sends
type Lexicon struct {
	Welcome  string
	Help     string
	Fallback string

	Win  string
	Lose string

	// Hint texts. HintGenre and HintYear take the revealed value.
	HintNone  string
	HintGenre string
	HintYear  string

	// NoImage is sent in place of the still when the image file is missing
	NoImage string

	LeftGame string

	// Command used while not in a round
	OnlyOutsideRound string
	// Command used while in a round
	OnlyInRound string

	// Stats takes score, guessed film count
	Stats string
	// StatsInRound is appended while a round is in progress, takes attempts left
	StatsInRound string

	// Keyboards
	IdleKeyboard    []string
	InRoundKeyboard []string
}

var lexicons = map[string]*Lexicon{
	English: {
		Welcome: "Hi!\nLet's play \"Guess the film by its still\"?\n\n" +
			"Send /help to get the rules and the list of commands.",
		Help: "Rules:\n\nI send you a still from a film, " +
			"and you reply with its title.\n\n" +
			"Example answer: Forrest Gump\n\n" +
			"Commands:\n" +
			"/play - start playing\n" +
			"/sur - give up\n" +
			"/cancel - leave the game\n" +
			"/stat - show your statistics\n" +
			"/help - rules and commands\n\nShall we play?",
		Fallback:         "I only play by the rules, send /help to read them.",
		Win:              "Congratulations, you won!",
		Lose:             "Sorry, you lost :(",
		HintNone:         "Wrong.",
		HintGenre:        "Wrong. Hint: the genre is %s",
		HintYear:         "Not quite. Hint: the film came out in %s",
		NoImage:          "The still for this film is missing, guess by the hints!",
		LeftGame:         "You left the game. Send /play whenever you want to play again.",
		OnlyOutsideRound: "This command is only available outside a game. We are playing right now. Want to leave?",
		OnlyInRound:      "This command is only available in a game. We are not playing right now. Want to play?",
		Stats:            "Score: %d\nFilms guessed: %d",
		StatsInRound:     "\nAttempts left in current round: %d",
		IdleKeyboard:     []string{"/play", "/stat", "/help"},
		InRoundKeyboard:  []string{"/sur", "/cancel"},
	},
	Russian: {
		Welcome: "Привет!\nДавай сыграем в игру \"Угадай фильм по кадру\"?\n\n" +
			"Чтобы получить правила игры и список доступных " +
			"команд - отправьте команду /help",
		Help: "Правила игры:\n\nЯ присылаю кадр из фильма, " +
			"а вам нужно назвать его название.\n\n" +
			"Пример ответа: Форрест Гамп\n\n" +
			"Доступные команды:\n" +
			"/play - начать играть\n" +
			"/sur - сдаться\n" +
			"/cancel - отменить игру\n" +
			"/stat - посмотреть статистику\n" +
			"/help - правила игры и список команд\n\nДавай сыграем?",
		Fallback:         "Я играю только по правилам, введите /help, чтобы узнать правила.",
		Win:              "Поздравляю, ты победил!",
		Lose:             "К сожалению ты проиграл :(",
		HintNone:         "Неверно.",
		HintGenre:        "Неверно. Подсказка: жанр фильма - %s",
		HintYear:         "Ты не угадал. Подсказка: год выхода фильма - %s",
		NoImage:          "Кадр для этого фильма не найден, угадывайте по подсказкам!",
		LeftGame:         "Вы вышли из игры. Если захотите сыграть снова - напишите об этом. /play",
		OnlyOutsideRound: "Данная команда доступна только вне игры. Мы сейчас играем. Хотите выйти?",
		OnlyInRound:      "Данная команда доступна только в игре. Мы сейчас с вами не играем. Хотите сыграть?",
		Stats:            "Очки: %d\nУгаданных фильмов: %d",
		StatsInRound:     "\nОсталось попыток в текущей игре: %d",
		IdleKeyboard:     []string{"/play", "/stat", "/help"},
		InRoundKeyboard:  []string{"/sur", "/cancel"},
	},
}

// For returns the lexicon for a language code
func For(lang string) (*Lexicon, error) {
	l, ok := lexicons[strings.ToLower(strings.TrimSpace(lang))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return l, nil
}

// Languages lists the supported language codes in sorted order
func Languages() []string {
	langs := make([]string, 0, len(lexicons))
	for lang := range lexicons {
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// HintText renders the feedback for an incorrect guess
func (l *Lexicon) HintText(h game.Hint) string {
	switch h.Reveal {
	case game.RevealGenre:
		return fmt.Sprintf(l.HintGenre, h.Value)
	case game.RevealYear:
		return fmt.Sprintf(l.HintYear, h.Value)
	default:
		return l.HintNone
	}
}

// StatsText renders a player's statistics
func (l *Lexicon) StatsText(stats game.PlayerStats) string {
	text := fmt.Sprintf(l.Stats, stats.Score, stats.GuessedFilms)
	if stats.InRound {
		text += fmt.Sprintf(l.StatsInRound, stats.AttemptsLeft)
	}
	return text
}
