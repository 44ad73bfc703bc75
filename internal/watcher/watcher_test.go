package watcher

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/eteps/study-flow/internal/logger"
)

// recordingHandler collects handled paths and signals each on a channel.
type recordingHandler struct {
	mu      sync.Mutex
	paths   []string
	handled chan string
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{handled: make(chan string, 16)}
}

func (h *recordingHandler) handle(_ context.Context, path string) error {
	h.mu.Lock()
	h.paths = append(h.paths, path)
	h.mu.Unlock()
	h.handled <- path
	return nil
}

func (h *recordingHandler) all() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}

func startWatcher(t *testing.T, dir string, h *recordingHandler) (context.CancelFunc, chan error) {
	t.Helper()

	w, err := New(dir, h.handle, logger.NewWithWriter(io.Discard, logger.LevelDebug), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	return cancel, done
}

func waitHandled(t *testing.T, h *recordingHandler, want string) {
	t.Helper()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case got := <-h.handled:
			if got == want {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s, handled so far: %v", want, h.all())
		}
	}
}

func TestWatcherProcessesExistingFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "session.txt")
	if err := os.WriteFile(existing, []byte("transcript"), 0644); err != nil {
		t.Fatal(err)
	}

	h := newRecordingHandler()
	cancel, done := startWatcher(t, dir, h)
	defer cancel()

	waitHandled(t, h, existing)

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Start() returned %v, want context.Canceled", err)
	}
}

func TestWatcherDetectsNewFile(t *testing.T) {
	dir := t.TempDir()
	h := newRecordingHandler()
	cancel, done := startWatcher(t, dir, h)
	defer cancel()

	dropped := filepath.Join(dir, "session.mp4")
	if err := os.WriteFile(dropped, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	waitHandled(t, h, dropped)

	cancel()
	<-done
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	h := newRecordingHandler()
	cancel, done := startWatcher(t, dir, h)
	defer cancel()

	ignored := filepath.Join(dir, "cover.png")
	if err := os.WriteFile(ignored, []byte("img"), 0644); err != nil {
		t.Fatal(err)
	}
	wanted := filepath.Join(dir, "session.srt")
	if err := os.WriteFile(wanted, []byte("1\n00:00:00,000 --> 00:00:01,000\nhi\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// The srt event arrives after the png one, so once it is handled the
	// png would have been handled too, had it not been filtered.
	waitHandled(t, h, wanted)

	for _, p := range h.all() {
		if p == ignored {
			t.Errorf("unrelated file was handled: %s", p)
		}
	}

	cancel()
	<-done
}

func TestIsStudySource(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.mp4", true},
		{"a.mov", true},
		{"a.txt", true},
		{"a.srt", true},
		{"a.png", false},
		{"a.docx", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isStudySource(tt.path); got != tt.want {
				t.Errorf("isStudySource(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
