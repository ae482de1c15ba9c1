package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries the process settings, all sourced from the environment.
type Config struct {
	ServiceName string
	Env         string

	HTTPAddr        string
	ShutdownTimeout time.Duration
}

const (
	defaultServiceName     = "shopcore"
	defaultEnv             = "dev"
	defaultHTTPAddr        = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

// Load reads the configuration from environment variables, falling back to
// defaults suitable for local runs.
func Load() (Config, error) {
	cfg := Config{
		ServiceName:     getenvDefault("SERVICE_NAME", defaultServiceName),
		Env:             getenvDefault("ENV", defaultEnv),
		HTTPAddr:        getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		ShutdownTimeout: defaultShutdownTimeout,
	}

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
