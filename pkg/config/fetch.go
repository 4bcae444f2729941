package config

import (
	"time"

	"github.com/matzehuels/wallfeed/pkg/cache"
	"github.com/matzehuels/wallfeed/pkg/pipeline"
)

// FetchConfig controls upstream calls and batch sizes.
type FetchConfig struct {
	Timeout      string `toml:"timeout"`
	DefaultCount int    `toml:"default_count"`
	MaxCount     int    `toml:"max_count"`
	UserAgent    string `toml:"user_agent"`

	timeout time.Duration
}

// Finalize applies WALLFEED_FETCH_TIMEOUT and defaults.
func (c *FetchConfig) Finalize() error {
	envString("FETCH_TIMEOUT", &c.Timeout)
	envInt("DEFAULT_COUNT", &c.DefaultCount)
	envInt("MAX_COUNT", &c.MaxCount)

	if c.Timeout == "" {
		c.Timeout = "8s"
	}
	if c.DefaultCount == 0 {
		c.DefaultCount = pipeline.DefaultCount
	}
	if c.MaxCount == 0 {
		c.MaxCount = pipeline.DefaultMaxCount
	}

	d, err := parseDuration("timeout", c.Timeout)
	if err != nil {
		return err
	}
	if d == 0 {
		return invalid("timeout must be positive")
	}
	c.timeout = d
	if c.DefaultCount < 0 || c.MaxCount < 0 {
		return invalid("counts must be positive")
	}
	if c.DefaultCount > c.MaxCount {
		return invalid("default_count %d exceeds max_count %d", c.DefaultCount, c.MaxCount)
	}
	return nil
}

// TimeoutDuration returns the parsed per-fetch deadline.
func (c *FetchConfig) TimeoutDuration() time.Duration { return c.timeout }

// CacheConfig selects the upstream response cache.
type CacheConfig struct {
	Backend string      `toml:"backend"`
	TTL     string      `toml:"ttl"`
	Dir     string      `toml:"dir"`
	Redis   RedisConfig `toml:"redis"`

	ttl time.Duration
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// Finalize applies WALLFEED_CACHE_*, WALLFEED_REDIS_* and defaults.
func (c *CacheConfig) Finalize() error {
	envString("CACHE_BACKEND", &c.Backend)
	envString("CACHE_TTL", &c.TTL)
	envString("CACHE_DIR", &c.Dir)
	envString("REDIS_ADDR", &c.Redis.Addr)
	envString("REDIS_PASSWORD", &c.Redis.Password)
	envInt("REDIS_DB", &c.Redis.DB)

	if c.Backend == "" {
		c.Backend = cache.BackendNone
	}
	if c.TTL == "" {
		c.TTL = "1h"
	}
	if c.Dir == "" {
		if dir, err := DefaultCacheDir(); err == nil {
			c.Dir = dir
		}
	}

	d, err := parseDuration("ttl", c.TTL)
	if err != nil {
		return err
	}
	c.ttl = d

	switch c.Backend {
	case cache.BackendNone, cache.BackendMemory:
	case cache.BackendFile:
		if c.Dir == "" {
			return invalid("file backend requires dir")
		}
	case cache.BackendRedis:
		if c.Redis.Addr == "" {
			return invalid("redis backend requires redis.addr")
		}
	default:
		return invalid("unknown backend %q", c.Backend)
	}
	return nil
}

// TTLDuration returns the parsed cache lifetime.
func (c *CacheConfig) TTLDuration() time.Duration { return c.ttl }

// Options converts the section into cache.Open options.
func (c *CacheConfig) Options() cache.Options {
	return cache.Options{
		Backend: c.Backend,
		Dir:     c.Dir,
		Redis: cache.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		},
	}
}
