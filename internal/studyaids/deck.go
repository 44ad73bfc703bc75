package studyaids

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Deck is one session's generated flashcard set.
type Deck struct {
	Title       string
	GeneratedAt time.Time
	Cards       []Card
}

// NewDeck validates the cards and stamps the deck.
func NewDeck(title string, cards []Card) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrDeckEmpty
	}
	for i, c := range cards {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("card %d: %w", i+1, err)
		}
	}

	return &Deck{
		Title:       title,
		GeneratedAt: time.Now(),
		Cards:       cards,
	}, nil
}

// CSV renders the deck in the two-column Front,Back format. The layout is
// import-compatible with Anki and other flashcard apps.
func (d *Deck) CSV() (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Front", "Back"}); err != nil {
		return "", fmt.Errorf("write CSV header: %w", err)
	}
	for i, c := range d.Cards {
		if err := w.Write([]string{c.Front, c.Back}); err != nil {
			return "", fmt.Errorf("write CSV row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush CSV: %w", err)
	}
	return buf.String(), nil
}
