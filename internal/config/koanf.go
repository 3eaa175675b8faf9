// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/contentroi/config.yaml",
	"/etc/contentroi/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all default values set.
func defaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source:      SourceGenerated,
			ContentPath: "data/content.csv",
			UsersPath:   "data/users.csv",
			MockSeed:    42,
			MockShows:   500,
			MockUsers:   10000,
		},
		Analysis: AnalysisConfig{
			DefaultWindowDays: 7,
			SweepWindows:      []int{3, 7, 14},
			SweepGenres:       []string{"Sci-Fi", "Comedy"},
			MaxParallel:       0,
			TopN:              5,
			AsOfDate:          "2025-01-15",
			ChurnAfterDays:    30,
		},
		Database: DatabaseConfig{
			Path:           "/data/contentroi.duckdb",
			MaxMemory:      "1GB",
			PersistResults: false,
		},
		Server: ServerConfig{
			Port:            8421,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			TTL: 5 * time.Minute,
		},
		Refresh: RefreshConfig{
			Enabled:  false,
			Interval: time.Hour,
		},
		Security: SecurityConfig{
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any mapped setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	//   ATTRIBUTION_WINDOW_DAYS -> analysis.default_window_days
	//   DUCKDB_PATH             -> database.path
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "" if none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"analysis.sweep_windows",
	"analysis.sweep_genres",
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings; YAML lists are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Dataset
	"dataset_source":    "dataset.source",
	"content_path":      "dataset.content_path",
	"users_path":        "dataset.users_path",
	"seed_mock_data":    "dataset.seed_mock_data",
	"mock_seed":         "dataset.mock_seed",
	"mock_shows":        "dataset.mock_shows",
	"mock_users":        "dataset.mock_users",
	"strict_all_errors": "dataset.strict_all_errors",

	// Analysis
	"attribution_window_days": "analysis.default_window_days",
	"sweep_windows":           "analysis.sweep_windows",
	"sweep_genres":            "analysis.sweep_genres",
	"sweep_max_parallel":      "analysis.max_parallel",
	"top_n":                   "analysis.top_n",
	"analysis_as_of_date":     "analysis.as_of_date",
	"churn_after_days":        "analysis.churn_after_days",

	// Database
	"duckdb_path":       "database.path",
	"duckdb_max_memory": "database.max_memory",
	"duckdb_threads":    "database.threads",
	"persist_results":   "database.persist_results",

	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"http_timeout":     "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Cache
	"cache_ttl": "cache.ttl",

	// Refresh
	"refresh_enabled":  "refresh.enabled",
	"refresh_interval": "refresh.interval",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - SWEEP_WINDOWS -> analysis.sweep_windows
//   - PATH -> "" (skipped)
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
