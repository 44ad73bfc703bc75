package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/eteps/study-flow/internal/source"
)

// Transcribe extracts audio from the recording and writes the plain-text
// transcript to destDir/transcription.txt, returning its path.
func (p *implProcessor) Transcribe(ctx context.Context, videoPath, destDir string) (string, error) {
	audioPath, err := p.ExtractAudio(ctx, videoPath, destDir)
	if err != nil {
		return "", err
	}

	text, err := p.transcribe(ctx, audioPath)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(destDir, TranscriptionFile)
	if err := p.writeArtifact(ctx, outPath, text); err != nil {
		return "", err
	}
	return outPath, nil
}

// transcribe runs whisper.cpp on the audio file and returns the transcript
// text. Whisper emits SRT next to the audio; the SRT is stripped down to
// plain text and removed afterwards.
func (p *implProcessor) transcribe(ctx context.Context, audioPath string) (string, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	p.logger.Info(ctx, "Transcribing with %d threads: %s", p.cfg.Whisper.Threads, audioPath)

	// -l: force language (prevents hallucination)
	// -ml/-mc 0: no segment or context limits, better for long sessions
	// -bo 5: best-of 5 for accuracy
	args := []string{
		"-m", p.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", p.cfg.Whisper.Language,
		"-t", strconv.Itoa(p.cfg.Whisper.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
	}
	if p.cfg.Whisper.Prompt != "" {
		// Domain keywords (book titles, character names) improve accuracy
		args = append(args, "--prompt", p.cfg.Whisper.Prompt)
	}
	args = append(args, "--output-file", outputPrefix)

	if _, err := p.executor.Execute(ctx, p.cfg.Whisper.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	defer p.cleanupTempFile(ctx, srtPath)

	data, err := os.ReadFile(srtPath)
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := source.CleanSRT(string(data))
	if text == "" {
		return "", fmt.Errorf("transcription produced no text")
	}

	p.logger.Info(ctx, "Transcription completed: %d chars", len(text))
	return text, nil
}
