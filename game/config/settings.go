package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings is the process configuration read from the environment. CLI
// flags override these values.
type Settings struct {
	Host          string        `env:"HOST" envDefault:"localhost"`
	Port          int           `env:"PORT" envDefault:"8080"`
	ConfigDir     string        `env:"CONFIG_DIR" envDefault:"configs"`
	DefaultConfig string        `env:"DEFAULT_CONFIG" envDefault:"classic"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	Debug         bool          `env:"DEBUG"`
	Seed          int64         `env:"GAME_SEED" envDefault:"-1"` // negative means unseeded
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	APIBaseURL    string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`

	NgrokEnabled   bool   `env:"NGROK_ENABLED"`
	NgrokAuthToken string `env:"NGROK_AUTHTOKEN"`
	NgrokDomain    string `env:"NGROK_DOMAIN"`
}

// LoadSettings parses Settings from the environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks the ranges env tags cannot express.
func (s Settings) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("port out of range: %d", s.Port)
	}
	if s.ConfigDir == "" {
		return fmt.Errorf("config dir is required")
	}
	if s.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", s.SessionTTL)
	}
	return nil
}

// Seeded reports whether draws should be reproducible, and the base seed.
func (s Settings) Seeded() (uint64, bool) {
	if s.Seed < 0 {
		return 0, false
	}
	return uint64(s.Seed), true
}
