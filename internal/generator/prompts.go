package generator

import (
	"fmt"
	"os"
	"strings"

	"github.com/eteps/study-flow/internal/config"
)

const defaultSummaryPrompt = `You are a study assistant for a reading club. Write a concise and informative summary of the session transcript below.

Requirements:
- Start with a one-sentence overview of what the session covered
- List the main discussion points in the order they came up
- Keep short quotes or passages the group dwelled on
- Use markdown: headings, bullet points, bold for key terms

Transcript:
---
%s
---`

const defaultFlashcardsPrompt = `Using the following summary and transcript from a reading club session, create a set of flashcards.

Respond with JSON only, in exactly this shape:
{"cards": [{"front": "question", "back": "answer", "hint": "optional hint", "tags": ["optional", "tags"]}]}

The front carries the question, the back the answer. Cover every main point of the session. Leave hint and tags out when they add nothing.

Summary:
%s

Transcript:
%s`

// Prompts holds the two generation templates. Each is a fmt template: the
// summary template takes the transcript, the flashcards template takes the
// summary and the transcript.
type Prompts struct {
	Summary    string
	Flashcards string
}

// DefaultPrompts returns the built-in templates.
func DefaultPrompts() Prompts {
	return Prompts{
		Summary:    defaultSummaryPrompt,
		Flashcards: defaultFlashcardsPrompt,
	}
}

// LoadPrompts returns the built-in templates with any configured override
// files applied.
func LoadPrompts(cfg config.PromptsConfig) (Prompts, error) {
	p := DefaultPrompts()

	if cfg.SummaryPath != "" {
		data, err := os.ReadFile(cfg.SummaryPath)
		if err != nil {
			return Prompts{}, fmt.Errorf("read summary prompt: %w", err)
		}
		p.Summary = string(data)
	}

	if cfg.FlashcardsPath != "" {
		data, err := os.ReadFile(cfg.FlashcardsPath)
		if err != nil {
			return Prompts{}, fmt.Errorf("read flashcards prompt: %w", err)
		}
		p.Flashcards = string(data)
	}

	if err := p.Validate(); err != nil {
		return Prompts{}, err
	}
	return p, nil
}

// Validate checks that each template has the placeholder count its inputs
// need. A mismatched override would otherwise fail only at generation time.
func (p Prompts) Validate() error {
	if n := strings.Count(p.Summary, "%s"); n != 1 {
		return fmt.Errorf("summary prompt needs exactly one %%s placeholder, found %d", n)
	}
	if n := strings.Count(p.Flashcards, "%s"); n != 2 {
		return fmt.Errorf("flashcards prompt needs exactly two %%s placeholders, found %d", n)
	}
	return nil
}
