package devserver

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the dev server settings, read from COUNTER_DEV_* variables.
type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	StaticDir string `env:"STATIC_DIR" envDefault:"build"`
	WatchDir  string `env:"WATCH_DIR" envDefault:"."`
	// Debounce is how long the source tree must stay quiet before a rebuild.
	Debounce time.Duration `env:"DEBOUNCE" envDefault:"100ms"`
}

// LoadConfig parses the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "COUNTER_DEV_"}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}
