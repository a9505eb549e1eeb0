package testutil

import "github.com/mcoot/guessfilm/internal/model"

// Films returns a small catalog in a fixed order
func Films() []model.Film {
	return []model.Film{
		{ID: 1, Name: "Forrest Gump", Year: 1994, Genre: "Drama", Description: "Life is like a box of chocolates.", ImagePath: "images/1.jpg"},
		{ID: 2, Name: "The Matrix", Year: 1999, Genre: "Science fiction", ImagePath: "images/2.jpg"},
		{ID: 3, Name: "Alien", Year: 1979, Genre: "Horror", ImagePath: "images/3.jpg"},
	}
}
