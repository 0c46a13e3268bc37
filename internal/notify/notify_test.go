package notify

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogNotifierWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	n := NewSlogNotifier(logger)

	n.Notify("configuration reloaded")

	if got := buf.String(); !strings.Contains(got, "configuration reloaded") {
		t.Errorf("log output = %q, want it to contain the message", got)
	}
}

func TestSlogNotifierDefaultsWhenLoggerNil(t *testing.T) {
	n := NewSlogNotifier(nil)
	if n.Logger == nil {
		t.Fatalf("expected a default logger, got nil")
	}
}
