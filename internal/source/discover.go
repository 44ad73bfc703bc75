package source

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var recordingExts = []string{".mp4", ".mov", ".avi", ".mkv", ".webm", ".m4v", ".flv"}

// IsRecording reports whether the path looks like a session recording.
func IsRecording(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range recordingExts {
		if ext == e {
			return true
		}
	}
	return false
}

// IsTranscript reports whether the path is a transcript format study aids
// can be generated from directly, without transcription.
func IsTranscript(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".srt":
		return true
	}
	return false
}

// DiscoverRecordings lists session recordings in dir, sorted by name.
func DiscoverRecordings(dir string) ([]string, error) {
	return discover(dir, IsRecording)
}

// DiscoverSources lists recordings and transcripts in dir, sorted by name.
// The watcher runs this once at startup so files dropped while it was down
// still get processed.
func DiscoverSources(dir string) ([]string, error) {
	return discover(dir, func(path string) bool {
		return IsRecording(path) || IsTranscript(path)
	})
}

func discover(dir string, match func(string) bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if match(e.Name()) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
