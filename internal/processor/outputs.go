package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eteps/study-flow/internal/studyaids"
)

// Artifact names inside a run's destination directory.
const (
	AudioFile          = "audio.wav"
	TranscriptionFile  = "transcription.txt"
	SummaryFile        = "summary.md"
	FlashcardsFile     = "flashcards.csv"
	SummaryDocxFile    = "summary.docx"
	FlashcardsDocxFile = "flashcards.docx"
)

// writeArtifact writes content to path exactly as produced, byte for byte.
func (p *implProcessor) writeArtifact(ctx context.Context, path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}

	p.logger.Info(ctx, "Saved %s", path)
	return nil
}

// writeSummary persists the summary text and, when enabled, its docx twin.
func (p *implProcessor) writeSummary(ctx context.Context, destDir, title, text string) error {
	if err := p.writeArtifact(ctx, filepath.Join(destDir, SummaryFile), text); err != nil {
		return err
	}

	if !p.cfg.Export.Docx {
		return nil
	}

	s, err := studyaids.NewSummary(title, text)
	if err != nil {
		return err
	}
	docxPath := filepath.Join(destDir, SummaryDocxFile)
	if err := studyaids.WriteSummaryDocx(s, docxPath); err != nil {
		return fmt.Errorf("write summary docx: %w", err)
	}

	p.logger.Info(ctx, "Saved %s", docxPath)
	return nil
}

// writeDeck persists the flashcards CSV and, when enabled, its docx twin.
func (p *implProcessor) writeDeck(ctx context.Context, destDir string, deck *studyaids.Deck) error {
	out, err := deck.CSV()
	if err != nil {
		return fmt.Errorf("render flashcards CSV: %w", err)
	}
	if err := p.writeArtifact(ctx, filepath.Join(destDir, FlashcardsFile), out); err != nil {
		return err
	}

	if !p.cfg.Export.Docx {
		return nil
	}

	docxPath := filepath.Join(destDir, FlashcardsDocxFile)
	if err := studyaids.WriteDeckDocx(deck, docxPath); err != nil {
		return fmt.Errorf("write flashcards docx: %w", err)
	}

	p.logger.Info(ctx, "Saved %s", docxPath)
	return nil
}

// stemOf returns the file name without extension, used as the artifact title.
func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
