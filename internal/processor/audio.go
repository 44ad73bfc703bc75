package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ExtractAudio extracts the recording's audio into destDir as 16kHz mono WAV,
// the format whisper.cpp works best with.
func (p *implProcessor) ExtractAudio(ctx context.Context, videoPath, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	audioPath := filepath.Join(destDir, AudioFile)

	p.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn: audio only
	// -ar 16000 -ac 1: 16kHz mono, what Whisper expects
	// -c:a pcm_s16le: uncompressed 16-bit PCM
	// -threads 0: all available CPU threads
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, "ffmpeg", args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	p.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
