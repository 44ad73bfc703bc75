package generator

import (
	"context"

	"github.com/eteps/study-flow/internal/studyaids"
)

// Generator turns reading session transcripts into study aids via an LLM.
type Generator interface {
	// Summarize returns a markdown summary of the transcript.
	Summarize(ctx context.Context, transcript string) (string, error)

	// Flashcards returns question/answer cards drawn from the session. The
	// summary gives the model the main points, the transcript the detail.
	Flashcards(ctx context.Context, summary, transcript string) ([]studyaids.Card, error)
}
