package studyaids

import (
	"errors"
	"strings"
	"time"
)

// ErrSummaryEmpty is returned when the model produced no summary text.
var ErrSummaryEmpty = errors.New("summary text is empty")

// Summary is one session's generated summary. Text is kept exactly as the
// model returned it; Title and GeneratedAt only shape the docx export.
type Summary struct {
	Title       string
	GeneratedAt time.Time
	Text        string
}

// NewSummary validates and stamps a summary.
func NewSummary(title, text string) (*Summary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrSummaryEmpty
	}

	return &Summary{
		Title:       title,
		GeneratedAt: time.Now(),
		Text:        text,
	}, nil
}
