package model

import (
	"fmt"
	"strings"
)

// FilmID uniquely identifies a film in the catalog
type FilmID int64

// Film is a single playable catalog entry. Films are loaded once at startup
// and never mutated.
type Film struct {
	ID          FilmID `json:"id"`
	Name        string `json:"name"`
	Year        int    `json:"year"`
	Genre       string `json:"genre"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
}

// Explain renders the reveal text shown after a round ends
func (f *Film) Explain() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %d\n\n%s.", f.Name, f.Year, f.Genre)
	if f.Description != "" {
		b.WriteString("\n")
		b.WriteString(f.Description)
	}
	return b.String()
}
