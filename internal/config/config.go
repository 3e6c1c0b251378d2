package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	GeoJSONPath string
	XLSXPath    string
	HTTPAddr    string
	LogLevel    string
	LogFormat   string

	ShutdownTimeout time.Duration

	// CacheTTL bounds how long a snapshot may be served before the source
	// fingerprints are rechecked. Zero disables the time bound; snapshots
	// are then invalidated only by fingerprint changes or explicit refresh.
	CacheTTL time.Duration

	// RandSeed fixes the simulation sequence for reproducible demos.
	// Zero seeds from entropy.
	RandSeed uint64
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	if shutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}

	cacheTTL, err := parseDuration("CACHE_TTL", "0s")
	if err != nil {
		return nil, err
	}
	if cacheTTL < 0 {
		return nil, errors.New("CACHE_TTL must not be negative")
	}

	seed, err := parseSeed()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		GeoJSONPath:     envOrDefault("GEOJSON_PATH", "data/ph_evacs_cleaned.geojson"),
		XLSXPath:        envOrDefault("XLSX_PATH", "data/evaccenter.xlsx"),
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CacheTTL:        cacheTTL,
		RandSeed:        seed,
	}

	if cfg.GeoJSONPath == "" {
		return nil, errors.New("GEOJSON_PATH is required")
	}
	if cfg.XLSXPath == "" {
		return nil, errors.New("XLSX_PATH is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseSeed() (uint64, error) {
	raw := os.Getenv("RAND_SEED")
	if raw == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid RAND_SEED: %w", err)
	}
	return seed, nil
}
