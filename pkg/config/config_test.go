package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WHITEBOARD_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Transport != TransportNone {
		t.Fatalf("expected default transport none, got %q", cfg.Transport)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.Channel != "whiteboard" {
		t.Fatalf("unexpected redis defaults %#v", cfg.Redis)
	}
	if strings.HasPrefix(cfg.Journal.Path, "~") || !strings.HasSuffix(cfg.Journal.Path, filepath.Join(".whiteboard", "journal")) {
		t.Fatalf("expected expanded journal path, got %q", cfg.Journal.Path)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	contents := "file: /tmp/todo.txt\ntransport: journal\njournal:\n  path: /tmp/journal\ndebug: true\n"
	if err := os.WriteFile(filepath.Join(dir, ".whiteboard.yaml"), []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WHITEBOARD_CONFIG_PATH", dir)
	t.Setenv("WHITEBOARD_REDIS_CHANNEL", "team")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != "/tmp/todo.txt" || cfg.Transport != TransportJournal || cfg.Journal.Path != "/tmp/journal" {
		t.Fatalf("unexpected config %#v", cfg)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug from file")
	}
	if cfg.Redis.Channel != "team" {
		t.Fatalf("expected env override for redis.channel, got %q", cfg.Redis.Channel)
	}
}

func TestLoadRejectsUnknownTransport(t *testing.T) {
	t.Setenv("WHITEBOARD_CONFIG_PATH", t.TempDir())
	t.Setenv("WHITEBOARD_TRANSPORT", "carrier-pigeon")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}
