// Package config loads server configuration from a TOML file
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/daddeck/daddeck-api/internal/entities"
	"github.com/daddeck/daddeck-api/internal/errors"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Redis     RedisConfig     `toml:"redis"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr                   string `toml:"addr"`
	ShutdownTimeoutSeconds int    `toml:"shutdown_timeout_seconds"`
}

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Address  string `toml:"address"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// AuthConfig holds API key authentication settings
type AuthConfig struct {
	// Enabled turns Bearer key checks on or off for the whole API
	Enabled bool `toml:"enabled"`
	// BootstrapKey, when set, is registered at startup as an enterprise
	// key so a fresh deployment can mint further keys over the API
	BootstrapKey string `toml:"bootstrap_key"`
}

// RateLimitConfig holds per-tier request budgets for a fixed window
type RateLimitConfig struct {
	WindowSeconds int   `toml:"window_seconds"`
	Free          int64 `toml:"free"`
	Basic         int64 `toml:"basic"`
	Pro           int64 `toml:"pro"`
	Enterprise    int64 `toml:"enterprise"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                   ":8080",
			ShutdownTimeoutSeconds: 30,
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		Auth: AuthConfig{
			Enabled: true,
		},
		RateLimit: RateLimitConfig{
			WindowSeconds: 60,
			Free:          60,
			Basic:         300,
			Pro:           1000,
			Enterprise:    5000,
		},
	}
}

// Load reads the config file at path. A missing file yields the defaults;
// a present file is decoded over them, so partial files work.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to decode config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is usable
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Server.Addr == "" {
		vb.RequiredField("server.addr")
	}
	if c.Server.ShutdownTimeoutSeconds < 1 {
		vb.Fieldf("server.shutdown_timeout_seconds", "must be at least 1, got %d", c.Server.ShutdownTimeoutSeconds)
	}
	if c.Redis.Address == "" {
		vb.RequiredField("redis.address")
	}
	if c.RateLimit.WindowSeconds < 1 {
		vb.Fieldf("rate_limit.window_seconds", "must be at least 1, got %d", c.RateLimit.WindowSeconds)
	}
	for _, tier := range []struct {
		name  string
		limit int64
	}{
		{"rate_limit.free", c.RateLimit.Free},
		{"rate_limit.basic", c.RateLimit.Basic},
		{"rate_limit.pro", c.RateLimit.Pro},
		{"rate_limit.enterprise", c.RateLimit.Enterprise},
	} {
		if tier.limit < 1 {
			vb.Fieldf(tier.name, "must be at least 1, got %d", tier.limit)
		}
	}

	return vb.Build()
}

// ShutdownTimeout returns the graceful shutdown window as a duration
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutSeconds) * time.Second
}

// LimitFor returns the request budget for an API tier. Unknown tiers get
// the free budget.
func (r *RateLimitConfig) LimitFor(tier entities.APITier) int64 {
	switch tier {
	case entities.TierBasic:
		return r.Basic
	case entities.TierPro:
		return r.Pro
	case entities.TierEnterprise:
		return r.Enterprise
	default:
		return r.Free
	}
}

// Window returns the fixed rate limit window as a duration
func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}
