package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fuzzyhash/internal/config"
)

func TestNewConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "console", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.With(slog.String(FieldComponent, "scan")).Info("hashed file", slog.String(FieldPath, "/tmp/a b"), slog.Int("size", 12))
	line := buf.String()

	for _, want := range []string{" INFO scan: hashed file", `path="/tmp/a b"`, "size=12"} {
		if !strings.Contains(line, want) {
			t.Errorf("console line %q missing %q", line, want)
		}
	}
	if strings.Contains(line, "component=") {
		t.Errorf("component should be rendered as prefix, got %q", line)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("slow read", slog.String(FieldRunID, "r1"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json line %q: %v", buf.String(), err)
	}
	if payload["level"] != "warn" {
		t.Errorf("level = %v, want warn", payload["level"])
	}
	if payload["msg"] != "slow read" {
		t.Errorf("msg = %v", payload["msg"])
	}
	if _, ok := payload["ts"]; !ok {
		t.Error("expected ts key")
	}
	if payload[FieldRunID] != "r1" {
		t.Errorf("run_id = %v", payload[FieldRunID])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Error("shown", Error(errors.New("boom")))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record leaked through warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "error=boom") {
		t.Errorf("error record missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for input, want := range tests {
		if got := ParseLevel(input); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := NewFromConfig(&cfg, "debug", "json")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("written to file")

	data, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "fuzzyhash.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := WithRunID(context.Background(), "abc")
	WithContext(ctx, logger).Info("tagged")
	if !strings.Contains(buf.String(), "run_id=abc") {
		t.Fatalf("expected run id in %q", buf.String())
	}

	if _, ok := RunIDFromContext(context.Background()); ok {
		t.Fatal("expected no run id on empty context")
	}
	if WithContext(context.Background(), nil) == nil {
		t.Fatal("expected nop logger for nil input")
	}
}

func TestPrettyHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Output: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.WithGroup("file").Info("grouped", slog.Int("size", 3), slog.Group("digest", slog.Int("block", 6)))
	out := buf.String()
	if !strings.Contains(out, "file.size=3") || !strings.Contains(out, "file.digest.block=6") {
		t.Fatalf("unexpected grouped output %q", out)
	}
}
