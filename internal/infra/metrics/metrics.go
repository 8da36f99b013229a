// Package metrics exposes Prometheus collectors for HTTP traffic and
// analysis runs.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Metrics holds all collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal    *prometheus.CounterVec
	requestsInFlight prometheus.Gauge
	requestDuration  *prometheus.HistogramVec

	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	failuresTotal    *prometheus.CounterVec
}

func New() (*Metrics, error) {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecosense_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	m.requestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ecosense_http_requests_in_flight",
		Help: "Number of HTTP requests being served",
	})
	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecosense_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecosense_analyses_total",
			Help: "Completed analyses by kind and result source",
		},
		[]string{"kind", "source"},
	)
	m.analysisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "ecosense_analysis_duration_seconds",
			Help: "Time from request to finished analysis",
			// 100ms .. ~50s, the remote call alone may take up to 30s
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"kind"},
	)
	m.failuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecosense_analysis_failures_total",
			Help: "Recorded failures by kind and phase",
		},
		[]string{"kind", "phase"},
	)

	for _, c := range []prometheus.Collector{
		m.requestsTotal, m.requestsInFlight, m.requestDuration,
		m.analysesTotal, m.analysisDuration, m.failuresTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := m.registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) AnalysisCompleted(kind analysis.Kind, source analysis.Source, elapsed time.Duration) {
	m.analysesTotal.WithLabelValues(string(kind), string(source)).Inc()
	m.analysisDuration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func (m *Metrics) FailureRecorded(kind analysis.Kind, phase analysis.Phase) {
	m.failuresTotal.WithLabelValues(string(kind), string(phase)).Inc()
}

// RequestStarted increments the in-flight gauge and returns the func that
// records the finished request.
func (m *Metrics) RequestStarted() func(method, route string, status int, elapsed time.Duration) {
	m.requestsInFlight.Inc()
	return func(method, route string, status int, elapsed time.Duration) {
		m.requestsInFlight.Dec()
		m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.HTTPErrorOnError,
	})
}

// Registry is exposed for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
