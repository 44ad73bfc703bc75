package watcher

import "context"

// Watcher monitors a drop directory for new session files.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one detected file.
type EventHandler func(ctx context.Context, filePath string) error
