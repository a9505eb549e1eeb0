package game

import (
	"strconv"

	"github.com/mcoot/guessfilm/internal/model"
)

// HintReveal names the film field a hint discloses
type HintReveal string

const (
	RevealNone  HintReveal = "none"
	RevealGenre HintReveal = "genre"
	RevealYear  HintReveal = "year"
)

// HintRule reveals a field once attemptsLeft/maxAttempts drops below Below
type HintRule struct {
	Below  float64
	Reveal HintReveal
}

// DefaultHints returns the standard policy: release year under 40% of the
// budget, genre under 70%, nothing above that. Strictest rule first.
func DefaultHints() []HintRule {
	return []HintRule{
		{Below: 0.4, Reveal: RevealYear},
		{Below: 0.7, Reveal: RevealGenre},
	}
}

// Hint is the result of an incorrect guess. Value holds the revealed field
// rendered as text, empty for RevealNone.
type Hint struct {
	Reveal HintReveal
	Value  string
}

// HintFor evaluates the rules in order and returns the first whose threshold
// the remaining-attempt ratio is below
func HintFor(rules []HintRule, film *model.Film, attemptsLeft, maxAttempts int) Hint {
	ratio := float64(attemptsLeft) / float64(maxAttempts)
	for _, rule := range rules {
		if ratio < rule.Below {
			return Hint{Reveal: rule.Reveal, Value: revealValue(film, rule.Reveal)}
		}
	}
	return Hint{Reveal: RevealNone}
}

func revealValue(film *model.Film, reveal HintReveal) string {
	switch reveal {
	case RevealGenre:
		return film.Genre
	case RevealYear:
		return strconv.Itoa(film.Year)
	default:
		return ""
	}
}
