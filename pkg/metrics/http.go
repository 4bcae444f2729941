package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/observability"
)

// UpstreamMetrics counts outbound calls. It implements observability.HTTPHooks.
type UpstreamMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

// NewUpstreamMetrics creates and registers upstream metrics.
func NewUpstreamMetrics(registry prometheus.Registerer) (*UpstreamMetrics, error) {
	m := &UpstreamMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_responses_total",
			Help:      "Upstream responses by host and status code.",
		}, []string{"host", "status_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Time until an upstream response body was fully read.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"host"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_failures_total",
			Help:      "Upstream calls that produced no response, by error code.",
		}, []string{"host", "code"}),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// OnRequest implements observability.HTTPHooks. Requests are counted on
// completion.
func (m *UpstreamMetrics) OnRequest(context.Context, string, string, string) {}

// OnResponse implements observability.HTTPHooks.
func (m *UpstreamMetrics) OnResponse(_ context.Context, _, host, _ string, statusCode int, duration time.Duration) {
	m.requests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	m.duration.WithLabelValues(host).Observe(duration.Seconds())
}

// OnError implements observability.HTTPHooks.
func (m *UpstreamMetrics) OnError(_ context.Context, _, host, _ string, err error) {
	m.failures.WithLabelValues(host, string(errors.CodeOf(err))).Inc()
}

// Describe implements prometheus.Collector.
func (m *UpstreamMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requests.Describe(ch)
	m.duration.Describe(ch)
	m.failures.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *UpstreamMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requests.Collect(ch)
	m.duration.Collect(ch)
	m.failures.Collect(ch)
}

var _ observability.HTTPHooks = (*UpstreamMetrics)(nil)

// ServerMetrics counts inbound API requests.
type ServerMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewServerMetrics creates and registers inbound request metrics.
func NewServerMetrics(registry prometheus.Registerer) (*ServerMetrics, error) {
	m := &ServerMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Inbound HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveRequest records one served request. route should be the router
// pattern, not the raw path, to keep label cardinality bounded.
func (m *ServerMetrics) ObserveRequest(route, method string, status int, duration time.Duration) {
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// Describe implements prometheus.Collector.
func (m *ServerMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requests.Describe(ch)
	m.duration.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *ServerMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requests.Collect(ch)
	m.duration.Collect(ch)
}
