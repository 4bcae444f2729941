package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/wallfeed/pkg/observability"
)

// CacheMetrics counts response cache traffic. It implements
// observability.CacheHooks.
type CacheMetrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
	bytes  *prometheus.CounterVec
}

// NewCacheMetrics creates and registers cache metrics.
func NewCacheMetrics(registry prometheus.Registerer) (*CacheMetrics, error) {
	m := &CacheMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Upstream responses served from cache.",
		}, []string{"provider"}),
		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Cacheable upstream responses not found in cache.",
		}, []string{"provider"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the response cache.",
		}, []string{"provider"}),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// OnCacheHit implements observability.CacheHooks.
func (m *CacheMetrics) OnCacheHit(_ context.Context, keyType string) {
	m.hits.WithLabelValues(keyType).Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *CacheMetrics) OnCacheMiss(_ context.Context, keyType string) {
	m.misses.WithLabelValues(keyType).Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *CacheMetrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.bytes.WithLabelValues(keyType).Add(float64(size))
}

// Describe implements prometheus.Collector.
func (m *CacheMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.hits.Describe(ch)
	m.misses.Describe(ch)
	m.bytes.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *CacheMetrics) Collect(ch chan<- prometheus.Metric) {
	m.hits.Collect(ch)
	m.misses.Collect(ch)
	m.bytes.Collect(ch)
}

var _ observability.CacheHooks = (*CacheMetrics)(nil)
