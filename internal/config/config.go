// Package config handles environment configuration and the channel registry.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the environment-derived settings for an export run. It is
// populated once at startup and immutable thereafter.
type Config struct {
	APIToken string `env:"SLACK_API_TOKEN,required,notEmpty"`
	Channel  string `env:"SLACK_CHANNEL"`
}

// FromEnv populates Config from the process environment. A missing or empty
// SLACK_API_TOKEN fails here, before any network activity.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}
