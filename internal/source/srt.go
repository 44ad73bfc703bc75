package source

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	reSrtTime  = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)
	reSrtIndex = regexp.MustCompile(`^\d+$`)
)

// srtReader turns subtitle files into plain transcripts.
type srtReader struct{}

func (r *srtReader) CanRead(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".srt"
}

func (r *srtReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return CleanSRT(string(data)), nil
}

// CleanSRT strips sequence numbers and timestamps from SRT content and
// collapses consecutive duplicate lines, which whisper emits on silence.
func CleanSRT(content string) string {
	var textLines []string
	var prev string

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || reSrtIndex.MatchString(trimmed) || reSrtTime.MatchString(trimmed) {
			continue
		}
		if trimmed == prev {
			continue
		}
		textLines = append(textLines, trimmed)
		prev = trimmed
	}

	return strings.Join(textLines, "\n")
}
