package config

import (
	"testing"
	"time"
)

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without POSTGRES_DSN")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "host=localhost user=postgres dbname=jobboard")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
	if cfg.ListCacheTTL != 30*time.Second {
		t.Errorf("list cache TTL = %v", cfg.ListCacheTTL)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoadOverridesAndMalformedValues(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "host=localhost")
	t.Setenv("LIST_CACHE_TTL", "2m")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListCacheTTL != 2*time.Minute {
		t.Errorf("list cache TTL = %v, want 2m", cfg.ListCacheTTL)
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("malformed int should keep default, got %d", cfg.MaxOpenConns)
	}
}

func TestValidateRejectsBadLogLevel(t *testing.T) {
	cfg := &Config{PostgresDSN: "x", MaxOpenConns: 1, LogLevel: "verbose"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid log level")
	}
}
