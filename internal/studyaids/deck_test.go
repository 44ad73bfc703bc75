package studyaids

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"
)

func TestNewDeck(t *testing.T) {
	cards := []Card{
		{Front: "Who narrates the story?", Back: "Ishmael"},
		{Front: "Name of the ship", Back: "Pequod"},
	}

	deck, err := NewDeck("Moby Dick - Session 4", cards)
	if err != nil {
		t.Fatalf("NewDeck() error = %v", err)
	}

	if deck.Title != "Moby Dick - Session 4" {
		t.Errorf("Title = %q", deck.Title)
	}
	if len(deck.Cards) != 2 {
		t.Errorf("len(Cards) = %d, want 2", len(deck.Cards))
	}
	if deck.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestNewDeckRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		cards   []Card
		wantErr error
	}{
		{"no cards", nil, ErrDeckEmpty},
		{"empty slice", []Card{}, ErrDeckEmpty},
		{"card missing front", []Card{{Back: "A"}}, ErrCardFrontEmpty},
		{"card missing back", []Card{{Front: "Q"}, {Front: "Q2"}}, ErrCardBackEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDeck("t", tt.cards)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDeck() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeckCSVRoundTrip(t *testing.T) {
	cards := []Card{
		{Front: "Plain question", Back: "Plain answer"},
		{Front: "Question, with comma", Back: `Answer with "quotes"`},
		{Front: "Multi\nline question", Back: "Answer"},
	}

	deck, err := NewDeck("session", cards)
	if err != nil {
		t.Fatalf("NewDeck() error = %v", err)
	}

	out, err := deck.CSV()
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parsing generated CSV: %v", err)
	}

	if len(records) != len(cards)+1 {
		t.Fatalf("CSV has %d records, want %d", len(records), len(cards)+1)
	}
	if records[0][0] != "Front" || records[0][1] != "Back" {
		t.Errorf("header = %v, want [Front Back]", records[0])
	}
	for i, c := range cards {
		row := records[i+1]
		if row[0] != c.Front || row[1] != c.Back {
			t.Errorf("row %d = %v, want [%q %q]", i+1, row, c.Front, c.Back)
		}
	}
}

func TestDeckCSVTwoColumnsOnly(t *testing.T) {
	deck, err := NewDeck("session", []Card{
		{Front: "Q", Back: "A", Hint: "hint stays out of CSV", Tags: []string{"tag"}},
	})
	if err != nil {
		t.Fatalf("NewDeck() error = %v", err)
	}

	out, err := deck.CSV()
	if err != nil {
		t.Fatalf("CSV() error = %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	for i, row := range records {
		if len(row) != 2 {
			t.Errorf("row %d has %d columns, want 2", i, len(row))
		}
	}
	if strings.Contains(out, "hint stays out of CSV") {
		t.Error("hint leaked into CSV output")
	}
}
