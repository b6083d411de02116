// apps/go-server/internal/config/config.go
//
// Process configuration, read once at startup from the environment
// (after godotenv has merged any local .env file).

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every operator-tunable setting of the server.
type Config struct {
	Port           string        `env:"PORT"             envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL"        envDefault:"info"`
	DatabasePath   string        `env:"DATABASE_PATH"    envDefault:"./data/boggle.db"`
	HistoryEnabled bool          `env:"HISTORY_ENABLED"  envDefault:"true"`
	DictionaryFile string        `env:"DICTIONARY_FILE"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`
	BoardSalt      string        `env:"BOARD_SALT"       envDefault:"local_dev_salt"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"10s"`
	RevealDelay    time.Duration `env:"REVEAL_DELAY"     envDefault:"2500ms"`
	OtelEndpoint   string        `env:"OTEL_ENDPOINT"`
	OtelEnabled    bool          `env:"OTEL_ENABLED"     envDefault:"true"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// PersistenceEnabled reports whether a history database should be opened.
func (c Config) PersistenceEnabled() bool { return c.HistoryEnabled && c.DatabasePath != "" }
