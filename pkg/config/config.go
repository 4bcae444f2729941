// Package config loads wallfeed configuration from a TOML file and the
// environment.
//
// Values are layered in this order, later layers winning:
//
//  1. the TOML file (optional)
//  2. WALLFEED_* environment variables
//  3. built-in defaults for anything still unset
//
// [Config.Finalize] applies layers 2 and 3 and validates the result; callers
// must invoke it before using a loaded Config.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wallfeed/pkg/errors"
)

const (
	// DefaultFile is read when no explicit path is given and it exists.
	DefaultFile = "wallfeed.toml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "WALLFEED_"
)

// Config is the root configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Fetch     FetchConfig     `toml:"fetch"`
	Cache     CacheConfig     `toml:"cache"`
	Logging   LoggingConfig   `toml:"logging"`
	Metrics   MetricsConfig   `toml:"metrics"`
	CORS      CORSConfig      `toml:"cors"`
	Providers ProvidersConfig `toml:"providers"`
}

// Load reads path, or DefaultFile when path is empty and that file exists.
// A missing DefaultFile is not an error; a missing explicit path is.
// The returned Config is not finalized.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultFile); err != nil {
			return &Config{}, nil
		}
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return &cfg, nil
}

// Default returns a finalized configuration with no file.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies environment overrides and defaults, then validates.
func (c *Config) Finalize() error {
	sections := []struct {
		name string
		fn   func() error
	}{
		{"server", c.Server.Finalize},
		{"fetch", c.Fetch.Finalize},
		{"cache", c.Cache.Finalize},
		{"logging", c.Logging.Finalize},
		{"metrics", c.Metrics.Finalize},
		{"cors", c.CORS.Finalize},
		{"providers", c.Providers.Finalize},
	}
	for _, s := range sections {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, format, args...)
}
