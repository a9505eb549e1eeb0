package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case MessagesResult:
		o.printMessages(v)
	case PlayerStats:
		o.printPlayerStats(v)
	case HealthResult:
		o.printHealthResult(v)
	case CatalogResult:
		o.printCatalogResult(v)
	case APIKeyResult:
		o.printAPIKeyResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Reply response type (matches API)
type Reply struct {
	Text     string   `json:"text,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Keyboard []string `json:"keyboard,omitempty"`
}

// MessagesResult response type
type MessagesResult struct {
	Replies []Reply `json:"replies"`
}

// PlayerStats response type
type PlayerStats struct {
	ID           int64 `json:"id"`
	Score        int   `json:"score"`
	GuessedFilms int   `json:"guessed_films"`
	InRound      bool  `json:"in_round"`
	AttemptsLeft int   `json:"attempts_left"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Films  int    `json:"films"`
}

// CatalogResult is the outcome of a local catalog check
type CatalogResult struct {
	Films         int     `json:"films"`
	MissingImages []int64 `json:"missing_images,omitempty"`
}

// APIKeyResult holds a generated key and its hash
type APIKeyResult struct {
	Key  string `json:"key"`
	Hash string `json:"hash"`
}

func (o *Output) printMessages(m MessagesResult) {
	for i, r := range m.Replies {
		if i > 0 {
			fmt.Fprintln(o.w)
		}
		if r.ImageURL != "" {
			fmt.Fprintf(o.w, "[image] %s\n", r.ImageURL)
		}
		if r.Text != "" {
			fmt.Fprintln(o.w, r.Text)
		}
		if len(r.Keyboard) > 0 {
			fmt.Fprintf(o.w, "Keyboard: %s\n", strings.Join(r.Keyboard, " | "))
		}
	}
}

func (o *Output) printPlayerStats(s PlayerStats) {
	fmt.Fprintf(o.w, "Player: %d\n", s.ID)
	fmt.Fprintf(o.w, "Score: %d\n", s.Score)
	fmt.Fprintf(o.w, "Films guessed: %d\n", s.GuessedFilms)
	if s.InRound {
		fmt.Fprintf(o.w, "In round: yes (%d attempts left)\n", s.AttemptsLeft)
	} else {
		fmt.Fprintln(o.w, "In round: no")
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	fmt.Fprintf(o.w, "Films: %d\n", h.Films)
}

func (o *Output) printCatalogResult(c CatalogResult) {
	fmt.Fprintf(o.w, "Catalog OK: %d films\n", c.Films)
	if len(c.MissingImages) > 0 {
		ids := make([]string, len(c.MissingImages))
		for i, id := range c.MissingImages {
			ids[i] = fmt.Sprint(id)
		}
		fmt.Fprintf(o.w, "Missing images: %s\n", strings.Join(ids, ", "))
	}
}

func (o *Output) printAPIKeyResult(k APIKeyResult) {
	fmt.Fprintf(o.w, "Key: %s\n", k.Key)
	fmt.Fprintf(o.w, "API_KEY_HASH=%s\n", k.Hash)
}
