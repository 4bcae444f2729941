package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/matzehuels/wallfeed/pkg/errors"
	"github.com/matzehuels/wallfeed/pkg/observability"
)

// FetchMetrics counts provider batches. It implements observability.FetchHooks.
type FetchMetrics struct {
	batches  *prometheus.CounterVec
	records  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	rejected prometheus.Counter
	inFlight prometheus.Gauge
}

// NewFetchMetrics creates and registers fetch metrics.
func NewFetchMetrics(registry prometheus.Registerer) (*FetchMetrics, error) {
	m := &FetchMetrics{
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_batches_total",
			Help:      "Provider batches by outcome (ok or error code).",
		}, []string{"provider", "result"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_records_total",
			Help:      "Wallpaper records returned to callers.",
		}, []string{"provider"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Time to build, fetch and parse one batch.",
			Buckets:   []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2, 4, 8, 16},
		}, []string{"provider"}),
		rejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_rejected_total",
			Help:      "Requests turned away because a fetch was already in flight.",
		}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fetch_in_flight",
			Help:      "1 while a provider batch is being fetched.",
		}),
	}
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// OnFetchStart marks a batch in flight.
func (m *FetchMetrics) OnFetchStart(_ context.Context, _ string, _ int) {
	m.inFlight.Inc()
}

// OnFetchComplete records the batch outcome.
func (m *FetchMetrics) OnFetchComplete(_ context.Context, provider string, records int, duration time.Duration, err error) {
	m.inFlight.Dec()
	m.duration.WithLabelValues(provider).Observe(duration.Seconds())
	if err != nil {
		m.batches.WithLabelValues(provider, string(errors.CodeOf(err))).Inc()
		return
	}
	m.batches.WithLabelValues(provider, "ok").Inc()
	m.records.WithLabelValues(provider).Add(float64(records))
}

// OnFetchRejected counts a single-flight rejection.
func (m *FetchMetrics) OnFetchRejected(context.Context) {
	m.rejected.Inc()
}

// Describe implements prometheus.Collector.
func (m *FetchMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.batches.Describe(ch)
	m.records.Describe(ch)
	m.duration.Describe(ch)
	ch <- m.rejected.Desc()
	ch <- m.inFlight.Desc()
}

// Collect implements prometheus.Collector.
func (m *FetchMetrics) Collect(ch chan<- prometheus.Metric) {
	m.batches.Collect(ch)
	m.records.Collect(ch)
	m.duration.Collect(ch)
	ch <- m.rejected
	ch <- m.inFlight
}

var _ observability.FetchHooks = (*FetchMetrics)(nil)
