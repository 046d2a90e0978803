// Package config loads runtime settings for the EventHub client.
//
// Sources and precedence:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, which override defaults.
//
// The cmd entrypoints load an optional .env file into the environment before
// calling Load, so local development does not need exported variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the client needs to reach the backend project.
// The API key is only consumed by the privileged setup tooling and must
// never be shipped inside the application build.
type Config struct {
	Endpoint        string        `env:"EVENTHUB_ENDPOINT"`
	ProjectID       string        `env:"EVENTHUB_PROJECT_ID"`
	DatabaseID      string        `env:"EVENTHUB_DATABASE_ID"`
	UsersCollection string        `env:"EVENTHUB_USERS_COLLECTION_ID"`
	APIKey          string        `env:"EVENTHUB_API_KEY"`
	RequestTimeout  time.Duration `env:"EVENTHUB_REQUEST_TIMEOUT"`
	LogLevel        string        `env:"EVENTHUB_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults for everything that has
// one. The project id has no default; it must come from the environment.
func (c *Config) LoadDefaults() {
	c.Endpoint = "https://cloud.appwrite.io/v1"
	c.DatabaseID = "user-database"
	c.UsersCollection = "users"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
}

// Load builds a Config from defaults overlaid with environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parsing environment: %w", err)
	}
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("config: EVENTHUB_PROJECT_ID is required")
	}
	return cfg, nil
}
