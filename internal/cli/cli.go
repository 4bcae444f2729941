// Package cli implements the wallfeed command-line interface.
//
// The CLI runs the wallpaper service and offers one-shot access to the same
// pipeline from a terminal. It is built on cobra and logs through
// charmbracelet/log; --verbose (-v) switches to debug level.
//
// # Commands
//
//   - serve: Run the HTTP API
//   - fetch: Fetch one batch and print it
//   - providers: List built-in providers and their configuration
//   - browse: Page through wallpapers interactively
//   - cache: Manage the upstream response cache
//
// # Configuration
//
// Every command reads wallfeed.toml from the working directory, or the file
// named by --config, then applies WALLFEED_* environment overrides.
//
// # Example
//
//	import "github.com/matzehuels/wallfeed/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wallfeed/pkg/buildinfo"
	"github.com/matzehuels/wallfeed/pkg/cache"
	"github.com/matzehuels/wallfeed/pkg/config"
	"github.com/matzehuels/wallfeed/pkg/httputil"
	"github.com/matzehuels/wallfeed/pkg/integrations"
	"github.com/matzehuels/wallfeed/pkg/pipeline"
	"github.com/matzehuels/wallfeed/pkg/provider"
	"github.com/matzehuels/wallfeed/pkg/providers"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	logOut     io.Writer
	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level, config.FormatText),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "wallfeed",
		Short:        "Wallfeed serves wallpapers from several upstream providers",
		Long:         `Wallfeed aggregates independent wallpaper providers behind one stable JSON API, keeping a sticky provider and per-provider pagination across requests.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.providersCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads and finalizes configuration, then reconfigures the logger
// from the logging section. --verbose always wins over the configured level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Finalize(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	c.cfg = cfg

	level := cfg.Logging.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	if cfg.Logging.Format != config.FormatText {
		c.Logger = newLogger(c.logOut, level, cfg.Logging.Format)
	} else {
		c.SetLogLevel(level)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// runtime bundles a runner with the resources it holds.
type runtime struct {
	Runner  *pipeline.Runner
	Client  *integrations.Client
	Cache   cache.Cache
	Options pipeline.Options
}

// Close releases the cache backend.
func (r *runtime) Close() error { return r.Cache.Close() }

// newRuntime assembles the pipeline from configuration. noCache forces the
// null cache regardless of the configured backend.
func (c *CLI) newRuntime(noCache bool) (*runtime, error) {
	cfg := c.cfg

	var backend cache.Cache = cache.NewNullCache()
	if !noCache {
		b, err := cache.Open(cfg.Cache.Options())
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		backend = b
	}

	for _, u := range providers.Check(&cfg.Providers) {
		c.Logger.Warn("provider unavailable", "provider", u.Type, "reason", u.Reason)
	}

	rng := provider.NewRand()
	registry, err := providers.Build(&cfg.Providers, rng)
	if err != nil {
		backend.Close()
		return nil, err
	}

	fetcher := httputil.NewFetcher(integrations.NewHTTPClient(), cfg.Fetch.TimeoutDuration())
	client := integrations.NewClient(fetcher, backend, cfg.Cache.TTLDuration(), integrations.DefaultHeaders(cfg.Fetch.UserAgent))

	opts := pipeline.Options{
		DefaultCount: cfg.Fetch.DefaultCount,
		MaxCount:     cfg.Fetch.MaxCount,
		Rand:         rng,
		Logger:       c.Logger,
	}
	return &runtime{
		Runner:  pipeline.NewRunner(registry, client, opts),
		Client:  client,
		Cache:   backend,
		Options: opts,
	}, nil
}
