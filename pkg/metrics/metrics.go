// Package metrics exposes wallfeed's Prometheus metrics.
//
// Each group of metrics is a prometheus.Collector that also implements the
// matching hook interface from the observability package, so installing a
// [Metrics] is enough to start counting fetches, cache lookups and upstream
// calls. Inbound HTTP metrics are recorded by the server middleware through
// [ServerMetrics].
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/wallfeed/pkg/observability"
)

const namespace = "wallfeed"

// Metrics holds every collector on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Fetch    *FetchMetrics
	Cache    *CacheMetrics
	Upstream *UpstreamMetrics
	Server   *ServerMetrics
}

// New creates the registry and registers all collectors, including the Go
// runtime and process collectors.
func New() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}

	fetch, err := NewFetchMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("create fetch metrics: %w", err)
	}
	cache, err := NewCacheMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("create cache metrics: %w", err)
	}
	upstream, err := NewUpstreamMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("create upstream metrics: %w", err)
	}
	server, err := NewServerMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("create server metrics: %w", err)
	}

	return &Metrics{
		registry: registry,
		Fetch:    fetch,
		Cache:    cache,
		Upstream: upstream,
		Server:   server,
	}, nil
}

// Install routes the observability hooks into these collectors.
func (m *Metrics) Install() {
	observability.SetFetchHooks(m.Fetch)
	observability.SetCacheHooks(m.Cache)
	observability.SetHTTPHooks(m.Upstream)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry:      m.registry,
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}
