// Package metrics exports carousel, session, cache and HTTP activity to
// Prometheus.
//
// A [Manager] implements every hook interface in package observability;
// register it at startup and serve [Manager.Handler] on /metrics:
//
//	m := metrics.NewManager()
//	m.Register()
//	router.Handle("/metrics", m.Handler())
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nekodev/skillring/pkg/observability"
)

// Manager owns the Prometheus collectors.
type Manager struct {
	namespace   string
	buckets     []float64
	constLabels prometheus.Labels
	registry    *prometheus.Registry

	navigations      *prometheus.CounterVec
	stateTransitions *prometheus.CounterVec
	inputsIgnored    *prometheus.CounterVec

	sessionsOpen   prometheus.Gauge
	sessionsClosed *prometheus.CounterVec

	cacheRequests *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates the collectors on a fresh registry that also carries
// the Go runtime and process collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "skillring",
		buckets:   prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.navigations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "carousel",
		Name:        "navigations_total",
		Help:        "Focus changes by the input that caused them",
		ConstLabels: m.constLabels,
	}, []string{"source"})

	m.stateTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "carousel",
		Name:        "state_transitions_total",
		Help:        "Navigation state transitions by target state",
		ConstLabels: m.constLabels,
	}, []string{"from", "to"})

	m.inputsIgnored = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "carousel",
		Name:        "inputs_ignored_total",
		Help:        "Input events absorbed without effect",
		ConstLabels: m.constLabels,
	}, []string{"input"})

	m.sessionsOpen = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "sessions",
		Name:        "open",
		Help:        "Hosted carousel sessions currently open",
		ConstLabels: m.constLabels,
	})

	m.sessionsClosed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "sessions",
		Name:        "closed_total",
		Help:        "Hosted carousel sessions closed, by reason",
		ConstLabels: m.constLabels,
	}, []string{"reason"})

	m.cacheRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "cache",
		Name:        "requests_total",
		Help:        "Cache lookups by key type and result",
		ConstLabels: m.constLabels,
	}, []string{"type", "result"})

	m.cacheBytes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "cache",
		Name:        "written_bytes_total",
		Help:        "Bytes written to the cache by key type",
		ConstLabels: m.constLabels,
	}, []string{"type"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "HTTP requests served",
		ConstLabels: m.constLabels,
	}, []string{"method", "route", "code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_seconds",
		Help:        "HTTP request latency",
		Buckets:     m.buckets,
		ConstLabels: m.constLabels,
	}, []string{"method", "route"})
}

// Register installs m as the global observability hooks.
func (m *Manager) Register() {
	observability.SetCarouselHooks(m)
	observability.SetSessionHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the registry the collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Manager) OnNavigate(_, _ int, source string) {
	m.navigations.WithLabelValues(source).Inc()
}

func (m *Manager) OnStateChange(from, to string) {
	m.stateTransitions.WithLabelValues(from, to).Inc()
}

func (m *Manager) OnInputIgnored(input, _ string) {
	m.inputsIgnored.WithLabelValues(input).Inc()
}

func (m *Manager) OnSessionOpened(context.Context) {
	m.sessionsOpen.Inc()
}

func (m *Manager) OnSessionClosed(_ context.Context, reason string) {
	m.sessionsOpen.Dec()
	m.sessionsClosed.WithLabelValues(reason).Inc()
}

func (m *Manager) OnCacheHit(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "hit").Inc()
}

func (m *Manager) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheRequests.WithLabelValues(keyType, "miss").Inc()
}

func (m *Manager) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (m *Manager) OnServed(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.CarouselHooks = (*Manager)(nil)
	_ observability.SessionHooks  = (*Manager)(nil)
	_ observability.CacheHooks    = (*Manager)(nil)
	_ observability.HTTPHooks     = (*Manager)(nil)
)
