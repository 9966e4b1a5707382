package config

import "github.com/caarlos0/env/v11"

// Load parses the full Config from environment variables. Every group has
// development defaults; only PG_ credentials and OTEL_ENDPOINT need to be
// set for a real deployment.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
