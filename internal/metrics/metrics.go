// Package metrics exposes adrift's Prometheus metrics, fed by lifecycle hooks.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aretw0/adrift/internal/logging"
	"github.com/aretw0/adrift/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "adrift"

// Collector owns a private registry so tests and multiple servers do not clash.
type Collector struct {
	registry *prometheus.Registry
	logger   *slog.Logger

	turns       *prometheus.CounterVec
	completions *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	dropped     prometheus.Counter
}

// Option configures a Collector.
type Option func(*Collector)

// WithLogger logs every hook event at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// New creates a Collector with Go runtime and process collectors registered.
func New(opts ...Option) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		logger:   logging.NewNop(),
		turns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "turns_total",
				Help:      "Total number of story turns, by mode and outcome.",
			},
			[]string{"mode", "continue", "error"},
		),
		completions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "completions_total",
				Help:      "Total number of requests to the completion API.",
			},
			[]string{"model", "status"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "completion_duration_seconds",
				Help:      "Histogram of completion API request durations.",
				Buckets:   []float64{.25, .5, 1, 2, 4, 8, 16, 32, 64},
			},
			[]string{"model"},
		),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_inputs_total",
			Help:      "Inputs dropped because a request was already in flight.",
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.registry.MustRegister(
		c.turns, c.completions, c.latency, c.dropped,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// WatchSessions exports the value of count as the live sessions gauge.
func (c *Collector) WatchSessions(count func() int) {
	c.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions",
			Help:      "Number of live sessions.",
		},
		func() float64 { return float64(count()) },
	))
}

// Hooks returns lifecycle hooks recording into the collector.
func (c *Collector) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			c.logger.Debug("turn", "session_id", e.SessionID, "mode", e.Mode, "turn", e.Turn, "continue", e.Continue, "err", e.Err)
			c.turns.WithLabelValues(e.Mode, strconv.FormatBool(e.Continue), strconv.FormatBool(e.Err != nil)).Inc()
		},
		OnCompletion: func(ctx context.Context, e *domain.CompletionEvent) {
			c.logger.Debug("completion", "model", e.Model, "status", e.Status, "duration", e.Duration)
			c.completions.WithLabelValues(e.Model, e.Status).Inc()
			c.latency.WithLabelValues(e.Model).Observe(e.Duration.Seconds())
		},
		OnDropped: func(ctx context.Context, e *domain.DroppedEvent) {
			c.logger.Debug("input dropped", "session_id", e.SessionID)
			c.dropped.Inc()
		},
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
