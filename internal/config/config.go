package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreSQLite = "sqlite"
)

type Config struct {
	APIKey                string        `env:"GROQ_API_KEY,required,notEmpty"`
	SummarizerBaseURL     string        `env:"SUMMARIZER_BASE_URL"     envDefault:"https://api.groq.com/openai/v1/"`
	SummarizerModel       string        `env:"SUMMARIZER_MODEL"        envDefault:"meta-llama/llama-4-scout-17b-16e-instruct"`
	SummarizerTemperature float64       `env:"SUMMARIZER_TEMPERATURE"  envDefault:"0.3"`
	SummarizerTimeout     time.Duration `env:"SUMMARIZER_TIMEOUT"      envDefault:"0s"`
	SummarizerMinInterval time.Duration `env:"SUMMARIZER_MIN_INTERVAL" envDefault:"0s"`
	ListenAddr            string        `env:"LISTEN_ADDR"             envDefault:"127.0.0.1:8080"`
	SessionStore          string        `env:"SESSION_STORE"           envDefault:"memory"`
	DBPath                string        `env:"DB_PATH"                 envDefault:"file:lecturenotes?mode=memory&cache=shared"`
	SessionTTL            time.Duration `env:"SESSION_TTL"             envDefault:"12h"`
	SessionMaxEntries     int           `env:"SESSION_MAX_ENTRIES"     envDefault:"1024"`
	MaxUploadBytes        int64         `env:"MAX_UPLOAD_BYTES"        envDefault:"33554432"`
	LogLevel              slog.Level    `env:"LOG_LEVEL"               envDefault:"info"`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreSQLite:
	default:
		return fmt.Errorf("unknown session store %q (want %q or %q)",
			c.SessionStore, SessionStoreMemory, SessionStoreSQLite)
	}

	if c.SummarizerTemperature < 0 || c.SummarizerTemperature > 2 {
		return fmt.Errorf("temperature is out of range [0, 2] (temperature = %g)", c.SummarizerTemperature)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive (maxUploadBytes = %d)", c.MaxUploadBytes)
	}

	return nil
}
