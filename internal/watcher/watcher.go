package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/eteps/study-flow/internal/logger"
	"github.com/eteps/study-flow/internal/source"
)

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
}

// settleDelay gives the writer time to finish before the file is read.
const settleDelay = 500 * time.Millisecond

// Start processes files already waiting in the drop directory, then monitors
// it for new recordings and transcripts until the context is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "Watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Recordings: .mp4, .mov, .avi, .mkv, .webm, .m4v, .flv; transcripts: .txt, .srt")

	if err := w.processExisting(ctx); err != nil {
		w.wg.Wait()
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing runs to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "Watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isStudySource(event.Name) {
				w.logger.Debug(ctx, "Ignoring %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New file detected: %s", event.Name)

			// Small delay to ensure the file is fully written
			time.Sleep(settleDelay)

			if err := w.dispatch(ctx, event.Name); err != nil {
				w.wg.Wait()
				return err
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// processExisting handles files already sitting in the drop directory at
// startup, so sessions dropped while the watcher was down are not lost.
func (w *implWatcher) processExisting(ctx context.Context) error {
	files, err := source.DiscoverSources(w.inputDir)
	if err != nil {
		return fmt.Errorf("scan watch dir: %w", err)
	}
	if len(files) == 0 {
		return nil
	}

	w.logger.Info(ctx, "Found %d file(s) waiting in %s", len(files), w.inputDir)
	for _, f := range files {
		if err := w.dispatch(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// dispatch hands the file to the handler on its own goroutine, bounded by
// the semaphore. Blocks while all slots are busy.
func (w *implWatcher) dispatch(ctx context.Context, filePath string) error {
	select {
	case w.semaphore <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() { <-w.semaphore }()

		if err := w.handler(ctx, filePath); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
		}
	}()
	return nil
}

// Stop closes the file watcher.
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func isStudySource(path string) bool {
	return source.IsRecording(path) || source.IsTranscript(path)
}
