// Package config loads server configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all server configuration.
type Config struct {
	// HTTP server
	HTTPPort            string        `env:"PORT"                  envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Uploads. Statements larger than this are rejected at the transport
	// layer before any parsing happens.
	MaxUploadBytes int `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
