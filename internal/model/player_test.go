package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerIsNotInRound(t *testing.T) {
	p := NewPlayer(42)

	assert.Equal(t, PlayerID(42), p.ID)
	assert.False(t, p.InRound())
	assert.Equal(t, 0, p.Attempts)
	assert.Equal(t, 0, p.Score)
	assert.Empty(t, p.GuessedFilms)
	assert.NotNil(t, p.GuessedFilms)
}

func TestPlayerCloneDoesNotShareState(t *testing.T) {
	film := FilmID(3)
	p := &Player{ID: 1, CurrentFilm: &film, GuessedFilms: []FilmID{1, 2}, Attempts: 2, Score: 9}

	c := p.Clone()
	require.Equal(t, p, c)

	*c.CurrentFilm = 7
	c.GuessedFilms[0] = 99
	assert.Equal(t, FilmID(3), *p.CurrentFilm)
	assert.Equal(t, FilmID(1), p.GuessedFilms[0])
}

func TestPlayerHasGuessed(t *testing.T) {
	p := &Player{ID: 1, GuessedFilms: []FilmID{4, 5}}

	assert.True(t, p.HasGuessed(4))
	assert.False(t, p.HasGuessed(6))
}

func TestFilmExplain(t *testing.T) {
	f := Film{ID: 1, Name: "Forrest Gump", Year: 1994, Genre: "Drama", Description: "Life is like a box of chocolates."}
	assert.Equal(t, "Forrest Gump, 1994\n\nDrama.\nLife is like a box of chocolates.", f.Explain())

	f.Description = ""
	assert.Equal(t, "Forrest Gump, 1994\n\nDrama.", f.Explain())
}
