package logging

import (
	"bytes"
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		" DEBUG ": slog.LevelDebug,
		"warning": slog.LevelWarn,
		"err":     slog.LevelError,
		"trace":   slog.LevelDebug - 2,
		"verbose": slog.LevelInfo,
	}

	for input, expected := range cases {
		if actual := ParseLevel(input); actual != expected {
			t.Fatalf("ParseLevel(%q) expected %v got %v", input, expected, actual)
		}
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, Config{Level: "info", Format: "json"})

	logger.Debug("hidden")
	logger.Info("request acknowledged", slog.Int64("requestId", 7))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("expected json output: %v", err)
	}
	if entry["msg"] != "request acknowledged" || entry["requestId"] != float64(7) {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestSetup_WritesDailyFile(t *testing.T) {
	previous := slog.Default()
	defer slog.SetDefault(previous)
	defer log.SetOutput(os.Stderr)

	dir := filepath.Join(t.TempDir(), "logs")
	_, closer, err := Setup(Config{Level: "info", Format: "text", Directory: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	slog.Info("dashboard started")
	if err := closer(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, time.Now().UTC().Format("2006-01-02")+".log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "dashboard started") {
		t.Fatalf("log file missing entry: %q", data)
	}
}
