package config_test

import (
	"testing"

	"github.com/iho/payengine/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("QUEUE_SIZE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.QueueSize != 100 {
		t.Fatalf("expected default queue size 100, got %d", cfg.QueueSize)
	}

	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.LogLevel)
	}

	if cfg.LogFormat != "console" {
		t.Fatalf("expected default log format console, got %s", cfg.LogFormat)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUEUE_SIZE", "512")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.QueueSize != 512 {
		t.Fatalf("expected queue size override, got %d", cfg.QueueSize)
	}

	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("expected logging overrides, got level=%s format=%s", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestLoadInvalidQueueSize(t *testing.T) {
	t.Setenv("QUEUE_SIZE", "not-a-number")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid queue size")
	}
}
