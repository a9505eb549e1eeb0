package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/mcoot/guessfilm/internal/model"
)

// filmRecord mirrors one entry of the catalog resource. Older resources key
// the id as "_id".
type filmRecord struct {
	ID          *int64  `json:"id"`
	LegacyID    *int64  `json:"_id"`
	Name        string  `json:"name"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"`
	Description *string `json:"description"`
	ImagePath   *string `json:"image_path"`
}

// LoadFromFile loads the ordered film catalog from a JSON file
func LoadFromFile(path string) ([]model.Film, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", model.ErrCatalogMissing, path)
		}
		return nil, err
	}
	defer file.Close()

	films, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return films, nil
}

// Load parses an ordered film catalog. File order is preserved.
func Load(r io.Reader) ([]model.Film, error) {
	var records []filmRecord
	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCatalogMalformed, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after film list", model.ErrCatalogMalformed)
	}

	films := make([]model.Film, 0, len(records))
	seen := make(map[model.FilmID]struct{}, len(records))
	for i, rec := range records {
		film, err := rec.toFilm()
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", model.ErrCatalogMalformed, i, err)
		}
		if _, dup := seen[film.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate film id %d", model.ErrCatalogMalformed, film.ID)
		}
		seen[film.ID] = struct{}{}
		films = append(films, film)
	}
	return films, nil
}

func (r filmRecord) toFilm() (model.Film, error) {
	id := r.ID
	if id == nil {
		id = r.LegacyID
	}
	if id == nil {
		return model.Film{}, errors.New("missing id")
	}
	if r.Name == "" {
		return model.Film{}, errors.New("missing name")
	}
	if r.Year <= 0 {
		return model.Film{}, errors.New("missing year")
	}
	if r.Genre == "" {
		return model.Film{}, errors.New("missing genre")
	}

	film := model.Film{
		ID:    model.FilmID(*id),
		Name:  r.Name,
		Year:  r.Year,
		Genre: r.Genre,
	}
	if r.Description != nil {
		film.Description = *r.Description
	}
	if r.ImagePath != nil {
		film.ImagePath = *r.ImagePath
	}
	return film, nil
}

// ResolveImage returns the on-disk path of a film's image relative to
// baseDir, and whether that file exists
func ResolveImage(baseDir string, film *model.Film) (string, bool) {
	if film.ImagePath == "" {
		return "", false
	}
	path := film.ImagePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return path, false
	}
	return path, true
}
