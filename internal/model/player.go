package model

import "slices"

// PlayerID identifies a player; it is the chat platform's user id and is
// stable across sessions
type PlayerID int64

// Player holds per-user game state. CurrentFilm is nil when the player is
// not in a round.
type Player struct {
	ID           PlayerID `json:"id" bson:"_id"`
	CurrentFilm  *FilmID  `json:"current_film" bson:"current_film"`
	GuessedFilms []FilmID `json:"guessed_films" bson:"guessed_films"`
	Attempts     int      `json:"attempts" bson:"attempts"`
	Score        int      `json:"score" bson:"score"`
}

// NewPlayer returns a fresh player that is not in a round
func NewPlayer(id PlayerID) *Player {
	return &Player{
		ID:           id,
		GuessedFilms: []FilmID{},
	}
}

// InRound reports whether the player has an active round
func (p *Player) InRound() bool {
	return p.CurrentFilm != nil
}

// HasGuessed reports whether the film was already solved by this player
func (p *Player) HasGuessed(id FilmID) bool {
	return slices.Contains(p.GuessedFilms, id)
}

// Clone returns a deep copy, used by stores that must not share memory with
// the engine's cache
func (p *Player) Clone() *Player {
	c := *p
	if p.CurrentFilm != nil {
		id := *p.CurrentFilm
		c.CurrentFilm = &id
	}
	c.GuessedFilms = slices.Clone(p.GuessedFilms)
	if c.GuessedFilms == nil {
		c.GuessedFilms = []FilmID{}
	}
	return &c
}
