// Copyright (c) 2026 PaperTrack. All rights reserved.

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
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Restore Policies

// Archived-paper restore authorization policies.
//
// The lab never settled on who may un-archive a paper, so the rule is a
// deployment decision rather than a hard-coded one.
const (
	RestorePolicyAdminOnly    = "admin_only"
	RestorePolicyOwnerOrAdmin = "owner_or_admin"
)

// # Configuration Schema

// Config holds all runtime configuration for the PaperTrack API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Session Store (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// SessionSecret signs the HS256 session tokens.
	SessionSecret string `env:"SESSION_SECRET,required"`

	// RestorePolicy selects who may restore an archived paper:
	// "admin_only" or "owner_or_admin".
	RestorePolicy string `env:"RESTORE_POLICY" envDefault:"admin_only"`

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

	if cfg.RestorePolicy != RestorePolicyAdminOnly && cfg.RestorePolicy != RestorePolicyOwnerOrAdmin {
		return nil, fmt.Errorf("config: invalid RESTORE_POLICY %q", cfg.RestorePolicy)
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

// ExtraOriginList splits the comma-separated EXTRA_ORIGINS value into
// individual origins, skipping blanks.
func (c *Config) ExtraOriginList() []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
