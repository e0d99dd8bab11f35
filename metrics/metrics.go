// Package metrics exposes Prometheus metrics for the scoring service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Submission results
const (
	ResultOK         = "ok"
	ResultIncomplete = "incomplete"
	ResultError      = "error"
)

// Metrics holds every collector of the service on its own registry.
type Metrics struct {
	namespace string
	registry  *prometheus.Registry

	draftsSaved        prometheus.Counter
	validationFailures *prometheus.CounterVec
	submissions        *prometheus.CounterVec
	projectMutations   *prometheus.CounterVec
	projectsRegistered prometheus.Gauge

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option configures Metrics
type Option func(*Metrics)

// WithNamespace sets the namespace for all metrics
func WithNamespace(namespace string) Option {
	return func(m *Metrics) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// New creates and registers all collectors
func New(opts ...Option) *Metrics {
	m := &Metrics{
		namespace: "scoring",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.draftsSaved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "drafts_saved_total",
		Help:      "Total number of draft score sheets saved",
	})
	m.validationFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "validation_failures_total",
		Help:      "Rejected score inputs by criterion",
	}, []string{"criterion"})
	m.submissions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "submissions_total",
		Help:      "Final submission attempts by result",
	}, []string{"result"})
	m.projectMutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "project_mutations_total",
		Help:      "Administrative project changes by operation",
	}, []string{"operation"})
	m.projectsRegistered = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "projects_registered",
		Help:      "Number of projects currently under review",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route and status",
	}, []string{"method", "route", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	return m
}

// Handler serves the metrics in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordDraftSaved() { m.draftsSaved.Inc() }

func (m *Metrics) RecordValidationFailure(criterion string) {
	m.validationFailures.WithLabelValues(criterion).Inc()
}

func (m *Metrics) RecordSubmission(result string) {
	m.submissions.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordProjectMutation(operation string, projects int) {
	m.projectMutations.WithLabelValues(operation).Inc()
	m.projectsRegistered.Set(float64(projects))
}

func (m *Metrics) SetProjectsRegistered(projects int) {
	m.projectsRegistered.Set(float64(projects))
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
