// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/contentroi/internal/models"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any mapped setting
//
// Configuration Categories:
//
//  1. Data:
//     - Dataset: where the catalog and ledger come from (CSV, DuckDB, generated)
//     - Analysis: attribution window, sweep grid, churn policy
//
//  2. Infrastructure:
//     - Database: DuckDB store for tables and persisted results
//     - Server: HTTP server configuration
//     - Cache: analysis result cache
//     - Refresh: periodic dataset reload
//
//  3. API & Security:
//     - Security: rate limiting and CORS
//
//  4. Observability:
//     - Logging: Log levels and output formats
type Config struct {
	Dataset  DatasetConfig  `koanf:"dataset"`
	Analysis AnalysisConfig `koanf:"analysis"`
	Database DatabaseConfig `koanf:"database"`
	Server   ServerConfig   `koanf:"server"`
	Cache    CacheConfig    `koanf:"cache"`
	Refresh  RefreshConfig  `koanf:"refresh"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// Dataset sources.
const (
	SourceCSV       = "csv"
	SourceDuckDB    = "duckdb"
	SourceGenerated = "generated"
)

// DatasetConfig selects and tunes the dataset source.
//
// With source "csv" the two paths are read on every load. With "duckdb" the
// content and users tables of the configured database are read. With
// "generated" a seeded synthetic dataset is built in memory. SeedMockData
// additionally seeds an empty DuckDB store from the generator so the
// duckdb source has something to read on first start.
type DatasetConfig struct {
	Source          string `koanf:"source"`
	ContentPath     string `koanf:"content_path"`
	UsersPath       string `koanf:"users_path"`
	SeedMockData    bool   `koanf:"seed_mock_data"`
	MockSeed        uint64 `koanf:"mock_seed"`
	MockShows       int    `koanf:"mock_shows"`
	MockUsers       int    `koanf:"mock_users"`
	StrictAllErrors bool   `koanf:"strict_all_errors"` // report every malformed record instead of the first
}

// AnalysisConfig holds attribution and reporting defaults.
type AnalysisConfig struct {
	DefaultWindowDays int      `koanf:"default_window_days"`
	SweepWindows      []int    `koanf:"sweep_windows"`
	SweepGenres       []string `koanf:"sweep_genres"`
	MaxParallel       int      `koanf:"max_parallel"` // 0 = runtime.NumCPU()
	TopN              int      `koanf:"top_n"`
	AsOfDate          string   `koanf:"as_of_date"` // YYYY-MM-DD reference date for churn
	ChurnAfterDays    int      `koanf:"churn_after_days"`
}

// AsOf parses AsOfDate. An empty value means today in UTC.
func (a AnalysisConfig) AsOf() (time.Time, error) {
	if a.AsOfDate == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(models.DateLayout, a.AsOfDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("ANALYSIS_AS_OF_DATE must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	Path           string `koanf:"path"`
	MaxMemory      string `koanf:"max_memory"`
	Threads        int    `koanf:"threads"` // 0 = DuckDB default
	PersistResults bool   `koanf:"persist_results"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CacheConfig holds analysis result cache settings.
type CacheConfig struct {
	TTL time.Duration `koanf:"ttl"`
}

// RefreshConfig controls periodic dataset reloads.
type RefreshConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Interval time.Duration `koanf:"interval"`
}

// SecurityConfig holds rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // trace, debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Caller bool   `koanf:"caller"` // include file:line
}

// Load loads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
