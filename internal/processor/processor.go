package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/eteps/study-flow/internal/studyaids"
)

// Run orchestrates the full workflow for one recording. The run ID prefixes
// log lines so concurrent watch-mode runs stay distinguishable.
func (p *implProcessor) Run(ctx context.Context, videoPath, destDir string) error {
	runID := uuid.NewString()[:8]
	start := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "[%s] Processing recording: %s", runID, videoPath)
	p.logger.Info(ctx, "========================================")

	audioPath, err := p.ExtractAudio(ctx, videoPath, destDir)
	if err != nil {
		return fmt.Errorf("extract audio: %w", err)
	}

	text, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	if err := p.writeArtifact(ctx, filepath.Join(destDir, TranscriptionFile), text); err != nil {
		return err
	}

	title := stemOf(videoPath)

	summary, err := p.generator.Summarize(ctx, text)
	if err != nil {
		return fmt.Errorf("generate summary: %w", err)
	}
	if err := p.writeSummary(ctx, destDir, title, summary); err != nil {
		return err
	}

	cards, err := p.generator.Flashcards(ctx, summary, text)
	if err != nil {
		return fmt.Errorf("generate flashcards: %w", err)
	}
	deck, err := studyaids.NewDeck(title, cards)
	if err != nil {
		return err
	}
	if err := p.writeDeck(ctx, destDir, deck); err != nil {
		return err
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "[%s] Completed in %s", runID, time.Since(start).Round(time.Second))
	p.logger.Info(ctx, "[%s] Artifacts in %s", runID, destDir)
	p.logger.Info(ctx, "========================================")

	return nil
}
