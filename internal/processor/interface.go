package processor

import "context"

// Processor runs the study-aid pipeline. Every operation is one independent
// linear run writing its artifacts into destDir.
type Processor interface {
	// Run executes the full workflow for a recording: extract audio,
	// transcribe, summarize, generate flashcards.
	Run(ctx context.Context, videoPath, destDir string) error

	// ExtractAudio writes destDir/audio.wav and returns its path.
	ExtractAudio(ctx context.Context, videoPath, destDir string) (string, error)

	// Transcribe extracts audio and writes destDir/transcription.txt,
	// returning its path.
	Transcribe(ctx context.Context, videoPath, destDir string) (string, error)

	// Summarize generates destDir/summary.md from a transcript file.
	Summarize(ctx context.Context, transcriptPath, destDir string) error

	// Flashcards generates destDir/flashcards.csv from a transcript file.
	// With reuseSummary set, an existing destDir/summary.md feeds the card
	// prompt; otherwise the summary is regenerated and written as well.
	Flashcards(ctx context.Context, transcriptPath, destDir string, reuseSummary bool) error
}
