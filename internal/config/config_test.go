package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.APIKey != "test-key" {
		t.Fatalf("unexpected API key: %q", cfg.APIKey)
	}

	if cfg.SummarizerModel != "meta-llama/llama-4-scout-17b-16e-instruct" {
		t.Fatalf("unexpected model: %q", cfg.SummarizerModel)
	}

	if cfg.SummarizerTemperature != 0.3 {
		t.Fatalf("unexpected temperature: %g", cfg.SummarizerTemperature)
	}

	if cfg.SummarizerTimeout != 0 {
		t.Fatalf("expected no summarizer timeout by default, got %s", cfg.SummarizerTimeout)
	}

	if cfg.SessionStore != SessionStoreMemory {
		t.Fatalf("unexpected session store: %q", cfg.SessionStore)
	}

	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("unexpected session TTL: %s", cfg.SessionTTL)
	}

	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when GROQ_API_KEY is empty")
	}
}

func TestLoadRejectsUnknownSessionStore(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("SESSION_STORE", "redis")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown session store")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("SESSION_STORE", "sqlite")
	t.Setenv("SUMMARIZER_TEMPERATURE", "0.7")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SessionStore != SessionStoreSQLite {
		t.Fatalf("unexpected session store: %q", cfg.SessionStore)
	}

	if cfg.SummarizerTemperature != 0.7 {
		t.Fatalf("unexpected temperature: %g", cfg.SummarizerTemperature)
	}

	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}
