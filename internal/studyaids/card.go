package studyaids

import "errors"

// Card validation errors.
var (
	ErrCardFrontEmpty = errors.New("card front cannot be empty")
	ErrCardBackEmpty  = errors.New("card back cannot be empty")
	ErrDeckEmpty      = errors.New("deck has no cards")
)

// Card is a single question/answer flashcard. Hint and Tags are optional and
// only surface in the docx export; the CSV format stays two-column.
type Card struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Hint  string   `json:"hint,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

func (c Card) Validate() error {
	if c.Front == "" {
		return ErrCardFrontEmpty
	}
	if c.Back == "" {
		return ErrCardBackEmpty
	}
	return nil
}
