// Package metrics holds the Prometheus collectors of the client and the dashboard server.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "workoutlog"

	// StatusTransportError labels API calls that never got a response
	StatusTransportError = "error"
)

type Manager struct {
	// counters
	CounterAPIRequests  *prometheus.CounterVec
	CounterPageRequests *prometheus.CounterVec
	CounterDashboard    *prometheus.CounterVec
	CounterPanics       prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistogramAPIRequestDuration  *prometheus.HistogramVec
	HistogramPageRequestDuration *prometheus.HistogramVec
}

// NewRegistry returns a registry with build info, runtime and process collectors
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func NewTestManager() *Manager {
	return NewManager("test", prometheus.NewRegistry())
}

func NewManager(subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterAPIRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_requests_total",
			Help:      "The total number of requests sent to the workout log API",
		}, []string{"endpoint", "method", "status"}),
		CounterPageRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "page_requests_total",
			Help:      "The total number of incoming dashboard requests",
		}, []string{"method", "status"}),
		CounterDashboard: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dashboard_loads_total",
			Help:      "The total number of dashboard loads by final state",
		}, []string{"state"}),
		CounterPanics: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "handler_panics_total",
			Help:      "The total number of panics recovered while serving the dashboard",
		}),
		GaugeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "current_requests",
			Help:      "Current number of dashboard requests served",
		}),
		HistogramAPIRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of requests sent to the workout log API",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		HistogramPageRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "page_request_duration_seconds",
			Help:      "Duration of dashboard requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// ObserveAPIRequest records one API call. status is an HTTP status code or StatusTransportError.
func (m *Manager) ObserveAPIRequest(endpoint, method, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.CounterAPIRequests.WithLabelValues(endpoint, method, status).Inc()
	m.HistogramAPIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Manager) ObservePageRequest(method string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.CounterPageRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	m.HistogramPageRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

func (m *Manager) ObserveDashboardLoad(state string) {
	if m == nil {
		return
	}
	m.CounterDashboard.WithLabelValues(state).Inc()
}

func (m *Manager) ObservePanic() {
	if m == nil {
		return
	}
	m.CounterPanics.Inc()
}
