package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings read from the environment at startup.
type Config struct {
	// DBPath is the SQLite file. A leading ~/ expands to the home directory.
	DBPath    string `env:"SIDEQUEST_DB_PATH"    envDefault:"~/.sidequest.db"`
	LogLevel  string `env:"SIDEQUEST_LOG_LEVEL"  envDefault:"warn"`
	LogFormat string `env:"SIDEQUEST_LOG_FORMAT" envDefault:"text"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
