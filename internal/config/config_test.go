package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"sorter/internal/category"
	"sorter/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "sorter")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.LockDir() != filepath.Join(wantState, "locks") {
		t.Fatalf("unexpected lock dir: %q", cfg.LockDir())
	}
	if cfg.History.Enabled {
		t.Fatal("expected history disabled by default")
	}
	if cfg.History.Path != filepath.Join(wantState, "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}
	if cfg.Organize.Locale != "uk" {
		t.Fatalf("unexpected locale: %q", cfg.Organize.Locale)
	}
	if len(cfg.Organize.Extensions) != len(category.DefaultExtensions) {
		t.Fatalf("expected default allow-list, got %v", cfg.Organize.Extensions)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomConfigOverrides(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	configPath := filepath.Join(t.TempDir(), "sorter.toml")
	payload := struct {
		Organize map[string]any `toml:"organize"`
		History  map[string]any `toml:"history"`
		Logging  map[string]any `toml:"logging"`
	}{
		Organize: map[string]any{
			"extensions": []string{".mp4", "MP4", " txt ", "mp4", ""},
			"locale":     "RU",
		},
		History: map[string]any{
			"enabled": true,
			"path":    "~/journal/runs.db",
		},
		Logging: map[string]any{
			"format": "JSON",
			"level":  "Debug",
		},
	}
	data, err := toml.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected config at %s to be used, got %s exists=%v", configPath, resolved, exists)
	}

	want := []string{"mp4", "MP4", "txt"}
	if strings.Join(cfg.Organize.Extensions, ",") != strings.Join(want, ",") {
		t.Fatalf("unexpected extensions: %v", cfg.Organize.Extensions)
	}
	if cfg.Organize.Locale != "ru" {
		t.Fatalf("unexpected locale: %q", cfg.Organize.Locale)
	}
	if !cfg.History.Enabled || cfg.History.Path != filepath.Join(tempHome, "journal", "runs.db") {
		t.Fatalf("unexpected history config: %+v", cfg.History)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cases := map[string]string{
		"locale":     "[organize]\nlocale = \"de\"\n",
		"extensions": "[organize]\nextensions = []\n",
		"glob":       "[organize]\nextensions = [\"*.mp4\"]\n",
		"format":     "[logging]\nformat = \"xml\"\n",
		"level":      "[logging]\nlevel = \"trace\"\n",
		"unknown":    "[organize]\nsurprise = true\n",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), name+".toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		if _, _, _, err := config.Load(path); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestEnvOverridesLogLevel(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SORTER_LOG_LEVEL", "WARN")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestSampleConfigLoads(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if len(cfg.Organize.Extensions) != len(category.DefaultExtensions) {
		t.Fatalf("sample allow-list drifted from defaults: %v", cfg.Organize.Extensions)
	}
}

func TestEnsureDirectories(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(t.TempDir(), "hist", "history.db")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.LockDir(), filepath.Dir(cfg.History.Path)} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, err=%v", dir, err)
		}
	}
}

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	got, err := config.ExpandPath("~/music")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "music") {
		t.Fatalf("unexpected expansion %q", got)
	}
}
