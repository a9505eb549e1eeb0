package model

import "errors"

// Common errors used across the application
var (
	// Lookup errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrFilmNotFound   = errors.New("film not found")

	// Catalog errors, fatal at startup
	ErrEmptyCatalog     = errors.New("can't start game without films")
	ErrCatalogMissing   = errors.New("film catalog is missing")
	ErrCatalogMalformed = errors.New("film catalog is malformed")

	// Round errors
	ErrNotInRound = errors.New("player is not in a round")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
)
