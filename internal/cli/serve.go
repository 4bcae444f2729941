package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/wallfeed/internal/server"
	"github.com/matzehuels/wallfeed/pkg/metrics"
)

type serveOpts struct {
	addr    string
	noCache bool
	warm    bool
	warmAPI string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wallpaper HTTP API",
		Long: `Run the wallpaper HTTP API until interrupted.

Routes:
  GET /api/wallpapers?count=&type=   fetch a batch
  GET /api/history?limit=            previously returned wallpapers
  GET /api/providers                 provider and session state
  GET /healthz                       liveness
  GET /metrics                       Prometheus metrics (metrics.enabled)`,
		Example: `  wallfeed serve
  wallfeed serve --addr 127.0.0.1:9000 --warm --warm-type official`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the upstream response cache")
	cmd.Flags().BoolVar(&opts.warm, "warm", false, "fetch one batch at startup")
	cmd.Flags().StringVar(&opts.warmAPI, "warm-type", "", "provider for the startup batch (default: random)")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	rt, err := c.newRuntime(opts.noCache)
	if err != nil {
		return err
	}
	defer rt.Close()

	srvOpts := server.Options{
		Server:  c.cfg.Server,
		CORS:    c.cfg.CORS,
		Metrics: c.cfg.Metrics,
		Logger:  logger,
	}
	if opts.addr != "" {
		srvOpts.Server.Addr = opts.addr
	}
	if c.cfg.Metrics.IsEnabled() {
		m, err := metrics.New()
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		m.Install()
		srvOpts.Collectors = m
	}

	logger.Info("starting wallfeed",
		"providers", rt.Runner.Registry().Types(),
		"cache", c.cfg.Cache.Backend,
		"metrics", c.cfg.Metrics.IsEnabled())

	srv := server.New(rt.Runner, srvOpts)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.ListenAndServe(gctx)
	})
	if opts.warm {
		g.Go(func() error {
			prog := newProgress(logger)
			res := rt.Runner.ResolveAndFetch(gctx, 0, opts.warmAPI)
			if res.Err != nil {
				logger.Warn("warm-up fetch failed", "provider", res.Provider, "err", res.Err)
				return nil
			}
			prog.done(fmt.Sprintf("Warmed %s with %d wallpapers", res.Provider, len(res.Wallpapers)))
			return nil
		})
	}
	return g.Wait()
}
