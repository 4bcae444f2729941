// Package server exposes a pipeline.Runner over HTTP.
//
// The package owns routing, CORS and response encoding only. Provider
// selection, pagination and failure handling all live in the runner; every
// handler here is a thin translation between query parameters and a runner
// call.
//
// # Routes
//
//	GET  /api/wallpapers?count=&type=   fetch a batch
//	GET  /api/history?limit=            accumulated records
//	GET  /api/providers                 registry and session state
//	*    /api/*                         404
//	GET  /healthz                       liveness and version
//	GET  /metrics                       Prometheus exposition (optional)
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/wallfeed/pkg/config"
	"github.com/matzehuels/wallfeed/pkg/metrics"
	"github.com/matzehuels/wallfeed/pkg/pipeline"
)

// Options configures a Server.
type Options struct {
	Server  config.ServerConfig
	CORS    config.CORSConfig
	Metrics config.MetricsConfig

	// Collectors is optional. When nil, no /metrics route is mounted and
	// inbound requests are not counted.
	Collectors *metrics.Metrics

	Logger *log.Logger
}

// Server serves the wallpaper API.
type Server struct {
	runner  *pipeline.Runner
	router  chi.Router
	http    *http.Server
	logger  *log.Logger
	timeout time.Duration
}

// New builds the router and the underlying http.Server.
func New(runner *pipeline.Runner, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner:  runner,
		logger:  logger,
		timeout: opts.Server.ShutdownTimeoutDuration(),
	}
	s.router = s.routes(opts)
	s.http = &http.Server{
		Addr:         opts.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  opts.Server.ReadTimeoutDuration(),
		WriteTimeout: opts.Server.WriteTimeoutDuration(),
	}
	return s
}

func (s *Server) routes(opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)
	if opts.Collectors != nil {
		r.Use(instrument(opts.Collectors.Server))
	}

	r.Get("/healthz", s.handleHealth)
	if opts.Collectors != nil && opts.Metrics.IsEnabled() {
		r.Method(http.MethodGet, opts.Metrics.Path, opts.Collectors.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(cors(opts.CORS))
		r.Get("/wallpapers", s.handleWallpapers)
		r.Get("/history", s.handleHistory)
		r.Get("/providers", s.handleProviders)
		r.NotFound(notFound)
	})
	r.NotFound(notFound)
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.http.Addr }

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errc <- s.http.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.http.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}
