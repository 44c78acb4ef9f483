package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
backend:
  url: "http://localhost:5000/api"
  timeout: "10s"
redis:
  addr: "localhost:6379"
session:
  ttl: "24h"
quiz:
  ttl: "30s"
search:
  debounce: "500ms"
stream:
  pollInterval: "2s"
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Backend.URL != "http://localhost:5000/api" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if got := TTLDuration(cfg.Search.Debounce, time.Second); got != 500*time.Millisecond {
		t.Fatalf("debounce: %v", got)
	}
	if got := TTLDuration(cfg.Session.TTL, time.Hour); got != 24*time.Hour {
		t.Fatalf("session ttl: %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTTLDurationFallbacks(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("empty: %v", got)
	}
	if got := TTLDuration("not-a-duration", time.Minute); got != time.Minute {
		t.Fatalf("malformed: %v", got)
	}
}
