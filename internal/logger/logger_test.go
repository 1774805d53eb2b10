package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWriter_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, slog.LevelWarn)

	Info("hidden")
	Warn("shown", "habit_id", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "habit_id=7") {
		t.Errorf("expected warn line with attributes, got %q", out)
	}
}

func TestInitFile_WritesToPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "habitdash.log")
	if err := InitFile(slog.LevelDebug, path); err != nil {
		t.Fatalf("InitFile: %v", err)
	}
	Debug("insight fetch failed", "habit_id", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "insight fetch failed") {
		t.Errorf("log file missing message: %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("debug"); got != slog.LevelDebug {
		t.Errorf("got %v want debug", got)
	}
	if got := ParseLevel("nonsense"); got != slog.LevelInfo {
		t.Errorf("got %v want info fallback", got)
	}
}

func TestContextWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, slog.LevelInfo)

	ctx := ContextWith(context.Background(), "request_id", "abc-1")
	ctx = ContextWith(ctx, "habit_id", 3)
	InfoContext(ctx, "with context")
	Info("without context")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", buf.String())
	}
	if !strings.Contains(lines[0], "request_id=abc-1") || !strings.Contains(lines[0], "habit_id=3") {
		t.Errorf("context attributes missing: %q", lines[0])
	}
	if strings.Contains(lines[1], "request_id") {
		t.Errorf("plain call should not carry context attributes: %q", lines[1])
	}
}
