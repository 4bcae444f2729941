package config

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Addr            string `toml:"addr"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`

	read, write, shutdown time.Duration
}

// Finalize applies WALLFEED_ADDR and defaults.
func (c *ServerConfig) Finalize() error {
	envString("ADDR", &c.Addr)
	envString("SHUTDOWN_TIMEOUT", &c.ShutdownTimeout)

	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == "" {
		c.ReadTimeout = "15s"
	}
	if c.WriteTimeout == "" {
		c.WriteTimeout = "30s"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "10s"
	}

	var err error
	if c.read, err = parseDuration("read_timeout", c.ReadTimeout); err != nil {
		return err
	}
	if c.write, err = parseDuration("write_timeout", c.WriteTimeout); err != nil {
		return err
	}
	if c.shutdown, err = parseDuration("shutdown_timeout", c.ShutdownTimeout); err != nil {
		return err
	}
	return nil
}

// ReadTimeoutDuration returns the parsed read timeout.
func (c *ServerConfig) ReadTimeoutDuration() time.Duration { return c.read }

// WriteTimeoutDuration returns the parsed write timeout.
func (c *ServerConfig) WriteTimeoutDuration() time.Duration { return c.write }

// ShutdownTimeoutDuration returns the parsed graceful shutdown timeout.
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration { return c.shutdown }

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// LoggingConfig controls the process logger.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`

	level log.Level
}

// Finalize applies WALLFEED_LOG_LEVEL, WALLFEED_LOG_FORMAT and defaults.
func (c *LoggingConfig) Finalize() error {
	envString("LOG_LEVEL", &c.Level)
	envString("LOG_FORMAT", &c.Format)

	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	c.Format = strings.ToLower(c.Format)

	lvl, err := log.ParseLevel(strings.ToLower(c.Level))
	if err != nil {
		return invalid("invalid level %q", c.Level)
	}
	c.level = lvl
	if c.Format != FormatText && c.Format != FormatJSON {
		return invalid("format must be %q or %q, got %q", FormatText, FormatJSON, c.Format)
	}
	return nil
}

// LogLevel returns the parsed level.
func (c *LoggingConfig) LogLevel() log.Level { return c.level }

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled *bool  `toml:"enabled"`
	Path    string `toml:"path"`
}

// Finalize applies WALLFEED_METRICS_ENABLED and defaults.
func (c *MetricsConfig) Finalize() error {
	envBool("METRICS_ENABLED", &c.Enabled)
	if c.Path == "" {
		c.Path = "/metrics"
	}
	if !strings.HasPrefix(c.Path, "/") {
		return invalid("path must start with /")
	}
	if c.Path == "/api" || strings.HasPrefix(c.Path, "/api/") {
		return invalid("path must not live under /api")
	}
	return nil
}

// IsEnabled reports whether metrics are served. Defaults to true.
func (c *MetricsConfig) IsEnabled() bool { return boolOr(c.Enabled, true) }

// CORSConfig controls cross-origin headers on /api responses.
type CORSConfig struct {
	Origins []string `toml:"origins"`
	MaxAge  int      `toml:"max_age"`
}

// Finalize applies WALLFEED_CORS_ORIGINS and defaults.
func (c *CORSConfig) Finalize() error {
	envList("CORS_ORIGINS", &c.Origins)
	if len(c.Origins) == 0 {
		c.Origins = []string{"*"}
	}
	if c.MaxAge < 0 {
		return invalid("max_age must not be negative")
	}
	if c.MaxAge == 0 {
		c.MaxAge = 300
	}
	return nil
}

// AllowsAll reports whether any origin is accepted.
func (c *CORSConfig) AllowsAll() bool { return slices.Contains(c.Origins, "*") }
