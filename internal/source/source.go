package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptySource is returned when a source file contains no usable text.
	// Generation never proceeds with an empty transcript.
	ErrEmptySource = errors.New("source text is empty")

	// ErrUnsupported is returned for file types no reader accepts.
	ErrUnsupported = errors.New("unsupported source format")
)

// Reader loads source text from one file format.
type Reader interface {
	CanRead(path string) bool
	Read(path string) (string, error)
}

// readers is the default chain, most specific first. Plain text is the
// fallback for .txt and .md.
var readers = []Reader{
	&srtReader{},
	&htmlReader{},
	&textReader{},
}

// Load reads the transcript or reading text at path, normalising it to plain
// text. Empty results fail with ErrEmptySource.
func Load(path string) (string, error) {
	for _, r := range readers {
		if !r.CanRead(path) {
			continue
		}
		text, err := r.Read(path)
		if err != nil {
			return "", fmt.Errorf("read source %s: %w", path, err)
		}
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("%s: %w", path, ErrEmptySource)
		}
		return text, nil
	}
	return "", fmt.Errorf("%s: %w", path, ErrUnsupported)
}

// textReader handles plain text formats verbatim.
type textReader struct{}

func (r *textReader) CanRead(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		return true
	}
	return false
}

func (r *textReader) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
