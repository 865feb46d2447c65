// Package config holds runtime configuration for the aggregator.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds server and aggregation settings.
type Config struct {
	ListenAddr    string
	SearchTimeout time.Duration
	FetchTimeout  time.Duration
	UserAgent     string

	// Clustering policy. These are heuristics, kept configurable rather
	// than buried as magic numbers.
	TitleSimilarity float64
	PriceTolerance  float64

	// Result cache at the API boundary.
	CacheSize int
	CacheTTL  time.Duration

	Verbose bool
}

// DefaultConfig returns conservative defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      ":8000",
		SearchTimeout:   20 * time.Second,
		FetchTimeout:    15 * time.Second,
		UserAgent:       "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0 Safari/537.36",
		TitleSimilarity: 0.5,
		PriceTolerance:  0.2,
		CacheSize:       256,
		CacheTTL:        5 * time.Minute,
		Verbose:         false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address cannot be empty")
	}
	if c.SearchTimeout <= 0 {
		return fmt.Errorf("search timeout must be positive")
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.FetchTimeout > c.SearchTimeout {
		return fmt.Errorf("fetch timeout (%s) cannot exceed search timeout (%s)", c.FetchTimeout, c.SearchTimeout)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}
	if c.TitleSimilarity <= 0 || c.TitleSimilarity > 1 {
		return fmt.Errorf("title similarity must be in (0, 1]")
	}
	if c.PriceTolerance < 0 || c.PriceTolerance >= 1 {
		return fmt.Errorf("price tolerance must be in [0, 1)")
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	return nil
}

// EnvString reads a string environment variable, reporting presence.
func EnvString(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// EnvInt reads an integer environment variable, reporting presence.
func EnvInt(key string) (int, bool, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return 0, false, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, false, fmt.Errorf("parse %s: %w", key, err)
	}
	return parsed, true, nil
}
