package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	vangoerrors "github.com/vango-dev/showcase/internal/errors"
	"github.com/vango-dev/showcase/pkg/server"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "showcase").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "showcase",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors for one server. It implements
// server.Observer.
type Metrics struct {
	eventsTotal     *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	eventErrors     *prometheus.CounterVec
	notFound        prometheus.Counter
	renderBytes     prometheus.Histogram
	activeInstances prometheus.Gauge
	instancesClosed *prometheus.CounterVec
	wsErrors        *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

var _ server.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the collectors. Registering twice on the
// same registry panics, so create one Metrics per registry.
//
// Metrics collected (with the default namespace):
//   - showcase_events_total: events by kind and status
//   - showcase_event_duration_seconds: event handling duration by kind
//   - showcase_event_errors_total: failed events by kind and error code
//   - showcase_not_found_total: loads and navigations that hit the not-found page
//   - showcase_render_bytes: size of rendered bodies
//   - showcase_active_instances: live instances
//   - showcase_instances_closed_total: closed instances by reason
//   - showcase_websocket_errors_total: live channel errors by type
//   - showcase_http_requests_total: requests by method, route and code
//   - showcase_http_request_duration_seconds: request duration by method and route
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of instance events processed",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "status"}),

		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event processing duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"kind"}),

		eventErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_errors_total",
			Help:        "Total number of event processing errors",
			ConstLabels: config.ConstLabels,
		}, []string{"kind", "error_type"}),

		notFound: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "not_found_total",
			Help:        "Loads and navigations that rendered the not-found page",
			ConstLabels: config.ConstLabels,
		}),

		renderBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_bytes",
			Help:        "Size of rendered bodies in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     []float64{256, 1024, 4096, 16384, 65536, 262144}, // 256B to 256KB
		}),

		activeInstances: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_instances",
			Help:        "Number of live instances",
			ConstLabels: config.ConstLabels,
		}),

		instancesClosed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "instances_closed_total",
			Help:        "Total closed instances by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status code",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "route", "code"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"method", "route"}),
	}
}

// Middleware returns event middleware recording count, duration, errors
// and render size.
func (m *Metrics) Middleware() server.Middleware {
	return server.MiddlewareFunc(func(ctx context.Context, ev *server.Event, next func(context.Context) error) error {
		kind := string(ev.Kind)
		start := time.Now()

		err := next(ctx)

		m.eventDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
		status := "success"
		if err != nil {
			status = "error"
			m.eventErrors.WithLabelValues(kind, errorType(err)).Inc()
		} else {
			m.renderBytes.Observe(float64(ev.Bytes))
		}
		if ev.NotFound && ev.Kind != server.KindEvent {
			m.notFound.Inc()
		}
		m.eventsTotal.WithLabelValues(kind, status).Inc()

		return err
	})
}

// HTTP records request count and duration labelled by the chi route
// pattern, which keeps label cardinality bounded.
func (m *Metrics) HTTP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
			if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
				code = http.StatusSwitchingProtocols
			}
		}

		m.httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(code)).Inc()
	})
}

// InstanceCreated records a new instance.
func (m *Metrics) InstanceCreated() {
	m.activeInstances.Inc()
}

// InstanceClosed records a closed instance.
func (m *Metrics) InstanceClosed(reason string) {
	m.activeInstances.Dec()
	m.instancesClosed.WithLabelValues(reason).Inc()
}

// WebSocketError records a live channel error.
func (m *Metrics) WebSocketError(kind string) {
	m.wsErrors.WithLabelValues(kind).Inc()
}

// errorType returns a low-cardinality label for err: its error code when it
// has one.
func errorType(err error) string {
	if code := vangoerrors.Code(err); code != "" {
		return code
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}
