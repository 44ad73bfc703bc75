package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Level
	}{
		{"debug", "debug", LevelDebug},
		{"info", "info", LevelInfo},
		{"warn", "warn", LevelWarn},
		{"warning alias", "warning", LevelWarn},
		{"error", "error", LevelError},
		{"mixed case", "DeBuG", LevelDebug},
		{"padded", "  info  ", LevelInfo},
		{"unknown falls back to info", "verbose", LevelInfo},
		{"empty falls back to info", "", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name      string
		level     Level
		wantLines []string
		skipLines []string
	}{
		{
			name:      "debug emits everything",
			level:     LevelDebug,
			wantLines: []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]"},
		},
		{
			name:      "info drops debug",
			level:     LevelInfo,
			wantLines: []string{"[INFO]", "[WARN]", "[ERROR]"},
			skipLines: []string{"[DEBUG]"},
		},
		{
			name:      "error drops the rest",
			level:     LevelError,
			wantLines: []string{"[ERROR]"},
			skipLines: []string{"[DEBUG]", "[INFO]", "[WARN]"},
		},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := NewWithWriter(&buf, tt.level)

			log.Debug(ctx, "debug message")
			log.Info(ctx, "info message")
			log.Warn(ctx, "warn message")
			log.Error(ctx, "error message")

			out := buf.String()
			for _, want := range tt.wantLines {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, skip := range tt.skipLines {
				if strings.Contains(out, skip) {
					t.Errorf("output should not contain %q:\n%s", skip, out)
				}
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, LevelInfo)

	log.Info(context.Background(), "processed %d cards in %s", 12, "3s")

	if !strings.Contains(buf.String(), "processed 12 cards in 3s") {
		t.Errorf("formatted output wrong: %s", buf.String())
	}
}

func TestNewDoesNotPanic(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus"} {
		if log := New(level); log == nil {
			t.Errorf("New(%q) returned nil", level)
		}
	}
}
