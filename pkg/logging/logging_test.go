package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.name); got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelInfo, "json")

	logger.Debug("hidden")
	logger.Info("Session created", "session_id", "s1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["msg"] != "Session created" || entry["session_id"] != "s1" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn, "text")

	logger.Info("hidden")
	logger.Warn("RPC error", "code", "not_found")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at WARN level")
	}
	if !strings.Contains(out, "RPC error") || !strings.Contains(out, "not_found") {
		t.Errorf("missing warning in output: %q", out)
	}
}
