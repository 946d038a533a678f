// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"finopsguard/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Pricing contains pricing-resolution configuration
	Pricing PricingConfig `json:"pricing"`

	// Engine contains analysis execution configuration
	Engine EngineConfig `json:"engine"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// PricingConfig contains pricing-related settings
type PricingConfig struct {
	// LiveEnabled lists clouds for which live pricing APIs may be called
	LiveEnabled map[string]bool `json:"live_enabled"`

	// StaticFallbackEnabled enables the bundled static catalog
	StaticFallbackEnabled bool `json:"static_fallback_enabled"`

	// DefaultHourlyPrice is the low-confidence placeholder price in USD
	DefaultHourlyPrice string `json:"default_hourly_price"`

	// LiveTTLSeconds is how long live quotes are cached
	LiveTTLSeconds int `json:"live_ttl_seconds"`

	// StaticTTLSeconds is how long static quotes are cached
	StaticTTLSeconds int `json:"static_ttl_seconds"`

	// DefaultTTLSeconds is how long placeholder quotes are cached
	DefaultTTLSeconds int `json:"default_ttl_seconds"`

	// LiveCallTimeoutMs bounds a single live pricing API call
	LiveCallTimeoutMs int `json:"live_call_timeout_ms"`
}

// LiveTTL returns the live-quote cache TTL
func (p PricingConfig) LiveTTL() time.Duration {
	return time.Duration(p.LiveTTLSeconds) * time.Second
}

// StaticTTL returns the static-quote cache TTL
func (p PricingConfig) StaticTTL() time.Duration {
	return time.Duration(p.StaticTTLSeconds) * time.Second
}

// DefaultTTL returns the placeholder-quote cache TTL
func (p PricingConfig) DefaultTTL() time.Duration {
	return time.Duration(p.DefaultTTLSeconds) * time.Second
}

// LiveCallTimeout returns the per-call live pricing timeout
func (p PricingConfig) LiveCallTimeout() time.Duration {
	return time.Duration(p.LiveCallTimeoutMs) * time.Millisecond
}

// EngineConfig contains analysis execution settings
type EngineConfig struct {
	// RequestTimeoutSeconds bounds a whole analysis request
	RequestTimeoutSeconds int `json:"request_timeout_seconds"`

	// MaxPricingConcurrency bounds parallel pricing lookups
	MaxPricingConcurrency int `json:"max_pricing_concurrency"`
}

// RequestTimeout returns the overall request execution budget
func (e EngineConfig) RequestTimeout() time.Duration {
	return time.Duration(e.RequestTimeoutSeconds) * time.Second
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Pricing: PricingConfig{
			LiveEnabled:           map[string]bool{},
			StaticFallbackEnabled: true,
			DefaultHourlyPrice:    "0.05",
			LiveTTLSeconds:        6 * 3600,
			StaticTTLSeconds:      24 * 3600,
			DefaultTTLSeconds:     3600,
			LiveCallTimeoutMs:     3000,
		},
		Engine: EngineConfig{
			RequestTimeoutSeconds: 30,
			MaxPricingConcurrency: 8,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults
// when the file does not exist
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
