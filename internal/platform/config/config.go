// Copyright (c) 2026 Tablon. All rights reserved.
// Author: rb.quintana.dev@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, TokenService) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/tablonapp/tablon/internal/platform/constants"
)

// # Configuration Schema

// Config holds all runtime configuration for the Tablon API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTSecret is the process-wide token signing secret.
	JWTSecret string `env:"JWT_SECRET,required"`

	// UploadMode selects how post images are associated: "url" accepts an
	// externally hosted image URL in the JSON body; "upload" accepts a
	// multipart file stored by this process. Exactly one mode is active.
	UploadMode string `env:"UPLOAD_MODE" envDefault:"url"`

	// UploadDir is where stored files live when UploadMode is "upload".
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`

	// MaxUploadSize caps a single uploaded file, in bytes.
	MaxUploadSize int64 `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.UploadMode != constants.UploadModeURL && cfg.UploadMode != constants.UploadModeFile {
		return nil, fmt.Errorf("config: UPLOAD_MODE must be %q or %q, got %q",
			constants.UploadModeURL, constants.UploadModeFile, cfg.UploadMode)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// UploadEnabled reports whether the server stores image files itself.
func (c *Config) UploadEnabled() bool {
	return c.UploadMode == constants.UploadModeFile
}

// AllowedOrigins returns the extra CORS origins configured for production.
func (c *Config) AllowedOrigins() []string {
	if c.ExtraOrigins == "" {
		return nil
	}
	origins := strings.Split(c.ExtraOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
