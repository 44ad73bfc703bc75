package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eteps/study-flow/internal/source"
	"github.com/eteps/study-flow/internal/studyaids"
)

// Summarize loads the transcript file and writes the generated summary.
func (p *implProcessor) Summarize(ctx context.Context, transcriptPath, destDir string) error {
	text, err := source.Load(transcriptPath)
	if err != nil {
		return err
	}

	p.logger.Info(ctx, "Generating summary from %s", transcriptPath)

	summary, err := p.generator.Summarize(ctx, text)
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}

	return p.writeSummary(ctx, destDir, stemOf(transcriptPath), summary)
}

// Flashcards loads the transcript file and writes the generated deck. The
// summary feeding the card prompt is read from destDir/summary.md when
// reuseSummary is set and the file has content; otherwise it is generated
// and written alongside the deck.
func (p *implProcessor) Flashcards(ctx context.Context, transcriptPath, destDir string, reuseSummary bool) error {
	text, err := source.Load(transcriptPath)
	if err != nil {
		return err
	}

	title := stemOf(transcriptPath)

	summary, err := p.obtainSummary(ctx, text, destDir, title, reuseSummary)
	if err != nil {
		return err
	}

	p.logger.Info(ctx, "Generating flashcards from %s", transcriptPath)

	cards, err := p.generator.Flashcards(ctx, summary, text)
	if err != nil {
		return fmt.Errorf("generate flashcards: %w", err)
	}

	deck, err := studyaids.NewDeck(title, cards)
	if err != nil {
		return err
	}
	return p.writeDeck(ctx, destDir, deck)
}

func (p *implProcessor) obtainSummary(ctx context.Context, transcript, destDir, title string, reuse bool) (string, error) {
	if reuse {
		summaryPath := filepath.Join(destDir, SummaryFile)
		if data, err := os.ReadFile(summaryPath); err == nil && strings.TrimSpace(string(data)) != "" {
			p.logger.Info(ctx, "Reusing existing summary: %s", summaryPath)
			return string(data), nil
		}
	}

	summary, err := p.generator.Summarize(ctx, transcript)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	if err := p.writeSummary(ctx, destDir, title, summary); err != nil {
		return "", err
	}
	return summary, nil
}
