package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sorter/internal/config"
	"sorter/internal/logging"
)

func TestNewFromConfigWritesToFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "sorter.log")

	var buf bytes.Buffer
	logger, err := logging.NewFromConfig(&cfg, &buf)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("organize started", logging.String("root", "/tmp/x"))

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "organize started") {
		t.Fatalf("expected message in log file, got %q", content)
	}
	if !strings.Contains(buf.String(), "root=/tmp/x") {
		t.Fatalf("expected message on writer, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsComponentAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "organizer")
	component.Info("moved file",
		logging.String("from", "a b.mp4"),
		logging.Int("count", 2),
		logging.Error(errors.New("boom")),
	)

	line := buf.String()
	for _, fragment := range []string{"INFO organizer: moved file", `from="a b.mp4"`, "count=2", "error=boom"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should render as prefix, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "WARN shown") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestJSONLoggerIncludesRunID(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-123")
	logging.WithContext(ctx, logger).Info("pruned directory", logging.String("path", "/x/tmp"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload[logging.FieldRunID] != "run-123" {
		t.Fatalf("expected run id in payload, got %v", payload)
	}
	if payload["level"] != "info" || payload["msg"] != "pruned directory" {
		t.Fatalf("unexpected payload %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", payload)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml", Writer: &bytes.Buffer{}}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextWithoutRunID(t *testing.T) {
	logger := logging.NewNop()
	if got := logging.WithContext(context.Background(), logger); got != logger {
		t.Fatal("expected logger unchanged without run id")
	}
	if _, ok := logging.RunIDFromContext(context.Background()); ok {
		t.Fatal("did not expect run id")
	}
}

func TestWarnWithContextInjectsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "directory kept", "prune_kept")
	out := buf.String()
	if !strings.Contains(out, "event_type=prune_kept") || !strings.Contains(out, "error_hint=") {
		t.Fatalf("expected injected fields, got %q", out)
	}
}

func TestConsoleLoggerShortensRunIDAndFlattensGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "0123456789abcdef")
	logging.WithContext(ctx, logger).WithGroup("archive").Info("expanded", logging.Int("entries", 3))

	line := buf.String()
	for _, fragment := range []string{"run=01234567", "archive.entries=3", "INFO expanded"} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "0123456789abcdef") {
		t.Fatalf("expected shortened run id, got %q", line)
	}
}
