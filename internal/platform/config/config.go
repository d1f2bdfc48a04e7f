// Copyright (c) 2026 BlogTruyenTranhAI. All rights reserved.
// Author: ledong198910@gmail.com

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
  - DI-Friendly: Passed to core components (SQLite, Badger) via constructors.
  - Zero Hidden State: No global variables are used to store config.

Everything the runtime touches lives under DataDir so the whole library can be
backed up or moved by copying a single directory.
*/
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the local library runtime.
type Config struct {

	// Root directory for all persisted application data.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// Library database (SQLite)
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./data/library.db"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Device-scoped key-value store (Badger) holding the session pointer
	// and the active profile.
	SessionDir string `env:"SESSION_DIR" envDefault:"./data/session"`

	// Locale used for collation-aware title sorting (BCP-47 tag).
	Locale string `env:"LOCALE" envDefault:"vi"`

	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Debug       bool   `env:"DEBUG"       envDefault:"false"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the runtime is in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the runtime is in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
