// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/contentroi/internal/logging"
	"github.com/tomtom215/contentroi/internal/models"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateDataset(); err != nil {
		return err
	}

	if err := c.validateAnalysis(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateRefresh(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateDataset() error {
	switch c.Dataset.Source {
	case SourceCSV:
		if c.Dataset.ContentPath == "" || c.Dataset.UsersPath == "" {
			return fmt.Errorf("CONTENT_PATH and USERS_PATH are required when DATASET_SOURCE=csv")
		}
	case SourceDuckDB:
		if c.Database.Path == "" {
			return fmt.Errorf("DUCKDB_PATH is required when DATASET_SOURCE=duckdb")
		}
	case SourceGenerated:
	default:
		return fmt.Errorf("DATASET_SOURCE must be one of: csv, duckdb, generated (got %q)", c.Dataset.Source)
	}

	if c.Dataset.SeedMockData || c.Dataset.Source == SourceGenerated {
		if c.Dataset.MockShows < 1 || c.Dataset.MockUsers < 1 {
			return fmt.Errorf("MOCK_SHOWS and MOCK_USERS must be at least 1")
		}
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	a := c.Analysis
	if err := validateWindow("ATTRIBUTION_WINDOW_DAYS", a.DefaultWindowDays); err != nil {
		return err
	}

	if len(a.SweepWindows) == 0 {
		return fmt.Errorf("SWEEP_WINDOWS must contain at least one window")
	}
	for _, w := range a.SweepWindows {
		if err := validateWindow("SWEEP_WINDOWS", w); err != nil {
			return err
		}
	}

	for _, g := range a.SweepGenres {
		if strings.TrimSpace(g) == "" {
			return fmt.Errorf("SWEEP_GENRES must not contain empty names")
		}
		if strings.EqualFold(strings.TrimSpace(g), models.OrganicGenre) {
			return fmt.Errorf("SWEEP_GENRES must not contain the reserved genre %q", models.OrganicGenre)
		}
	}

	if a.MaxParallel < 0 {
		return fmt.Errorf("SWEEP_MAX_PARALLEL must be >= 0 (0 = number of CPUs)")
	}
	if a.TopN < 1 {
		return fmt.Errorf("TOP_N must be at least 1")
	}
	if a.ChurnAfterDays < 0 {
		return fmt.Errorf("CHURN_AFTER_DAYS must be >= 0")
	}
	if _, err := a.AsOf(); err != nil {
		return err
	}
	return nil
}

func validateWindow(name string, w int) error {
	if w < 0 || w > models.MaxWindowDays {
		return fmt.Errorf("%s must be between 0 and %d days (got %d)", name, models.MaxWindowDays, w)
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if c.Database.PersistResults && c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required when PERSIST_RESULTS=true")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0")
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateRefresh() error {
	if c.Refresh.Enabled && c.Refresh.Interval < time.Second {
		return fmt.Errorf("REFRESH_INTERVAL must be at least 1s when REFRESH_ENABLED=true")
	}
	return nil
}

// validateSecurity validates rate limiting bounds.
func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1")
	}
	if c.Security.RateLimitWindow < time.Second {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be at least 1s")
	}
	return nil
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}
