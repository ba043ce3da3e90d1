package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"info", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"trace", LevelTrace},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger("info", &buf)

	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug message leaked at info level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("info message missing")
	}
}

func TestNewTraceLoggerNilAtInfo(t *testing.T) {
	tl := NewTraceLogger(t.TempDir(), "info")
	if tl != nil {
		t.Fatal("expected nil trace logger at info level")
	}
	// Nil receiver must be safe.
	tl.Log(map[string]any{"event": "consume"})
	tl.Close()
}

func TestTraceLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	tl := NewTraceLogger(dir, "debug")
	if tl == nil {
		t.Fatal("expected trace logger at debug level")
	}
	defer tl.Close()

	tl.Log(map[string]any{"event": "consume", "symbol": "2"})
	tl.Log(map[string]any{"event": "final", "state": 4})
	tl.Close()

	data, err := os.ReadFile(filepath.Join(dir, "trace.jsonl"))
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &first); err != nil {
		t.Fatalf("line 1 is not JSON: %v", err)
	}
	if first["event"] != "consume" || first["symbol"] != "2" {
		t.Errorf("unexpected first event: %v", first)
	}
	if _, ok := first["time"]; !ok {
		t.Error("event missing time field")
	}
}
