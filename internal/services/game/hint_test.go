package game

import (
	"testing"

	"github.com/mcoot/guessfilm/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHintFor(t *testing.T) {
	film := testutil.Films()[0]

	tests := []struct {
		name         string
		attemptsLeft int
		maxAttempts  int
		want         Hint
	}{
		{"full budget reveals nothing", 3, 3, Hint{Reveal: RevealNone}},
		{"two thirds reveals genre", 2, 3, Hint{Reveal: RevealGenre, Value: "Drama"}},
		{"one third reveals year", 1, 3, Hint{Reveal: RevealYear, Value: "1994"}},
		{"exhausted reveals year", 0, 3, Hint{Reveal: RevealYear, Value: "1994"}},
		{"threshold is exclusive", 7, 10, Hint{Reveal: RevealNone}},
		{"just below genre threshold", 6, 10, Hint{Reveal: RevealGenre, Value: "Drama"}},
		{"exactly year threshold gives genre", 4, 10, Hint{Reveal: RevealGenre, Value: "Drama"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HintFor(DefaultHints(), &film, tt.attemptsLeft, tt.maxAttempts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHintForEmptyPolicy(t *testing.T) {
	film := testutil.Films()[0]
	assert.Equal(t, Hint{Reveal: RevealNone}, HintFor(nil, &film, 0, 3))
}

func TestHintForCustomPolicyFirstMatchWins(t *testing.T) {
	film := testutil.Films()[0]
	rules := []HintRule{
		{Below: 0.5, Reveal: RevealGenre},
		{Below: 1, Reveal: RevealYear},
	}

	assert.Equal(t, RevealGenre, HintFor(rules, &film, 1, 3).Reveal)
	assert.Equal(t, RevealYear, HintFor(rules, &film, 2, 3).Reveal)
}
