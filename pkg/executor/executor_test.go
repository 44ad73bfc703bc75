package executor

import (
	"context"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	out, err := New().Execute(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() output = %q, want hello", out)
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	_, err := New().Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 1")
	if err == nil {
		t.Fatal("Execute() expected error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error does not carry stderr: %v", err)
	}
}

func TestAvailable(t *testing.T) {
	e := New()
	if err := e.Available("sh"); err != nil {
		t.Errorf("Available(sh) error = %v", err)
	}
	if err := e.Available("no-such-binary-anywhere"); err == nil {
		t.Error("Available() expected error for missing binary")
	}
}
