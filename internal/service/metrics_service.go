package service

import (
	"fmt"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the gateway.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	descriptorBuilds  *prometheus.CounterVec
	tokenResolutions  *prometheus.CounterVec
	upstreamDuration  *prometheus.HistogramVec
	redirectDecisions *prometheus.CounterVec

	requestCount  uint64
	upstreamCount uint64
}

// MetricsSnapshot is a lightweight view used by tests and the readiness probe.
type MetricsSnapshot struct {
	RequestsTotal  uint64    `json:"requests_total"`
	UpstreamTotal  uint64    `json:"upstream_total"`
	Goroutines     int       `json:"goroutines"`
	GeneratedAtUTC time.Time `json:"generated_at"`
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	descriptorBuilds := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "descriptor_builds_total",
		Help: "Request descriptors built, by target route",
	}, []string{"route"})

	tokenResolutions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "credential_resolutions_total",
		Help: "Bearer token lookups; outcome is the matched slot or \"none\"",
	}, []string{"outcome"})

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "upstream_request_duration_seconds",
		Help:    "Duration of leave backend requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})

	redirectDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "redirect_decisions_total",
		Help: "Post-login redirect targets chosen",
	}, []string{"target"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, descriptorBuilds, tokenResolutions, upstreamDuration, redirectDecisions, goroutines)

	return &MetricsService{
		registry:          registry,
		handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		descriptorBuilds:  descriptorBuilds,
		tokenResolutions:  tokenResolutions,
		upstreamDuration:  upstreamDuration,
		redirectDecisions: redirectDecisions,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registry returns the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveHTTPRequest records inbound request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
}

// RecordDescriptor counts a built descriptor and the credential slot it used.
func (m *MetricsService) RecordDescriptor(route, slot string) {
	if m == nil {
		return
	}
	if slot == "" {
		slot = "none"
	}
	m.descriptorBuilds.WithLabelValues(route).Inc()
	m.tokenResolutions.WithLabelValues(slot).Inc()
}

// ObserveUpstream records a leave backend call. status 0 means no response.
func (m *MetricsService) ObserveUpstream(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(route, fmt.Sprintf("%d", status)).Observe(duration.Seconds())
	atomic.AddUint64(&m.upstreamCount, 1)
}

// RecordRedirect counts a chosen redirect target.
func (m *MetricsService) RecordRedirect(target string) {
	if m == nil {
		return
	}
	m.redirectDecisions.WithLabelValues(target).Inc()
}

// Snapshot returns aggregated counters.
func (m *MetricsService) Snapshot() MetricsSnapshot {
	if m == nil {
		return MetricsSnapshot{}
	}
	return MetricsSnapshot{
		RequestsTotal:  atomic.LoadUint64(&m.requestCount),
		UpstreamTotal:  atomic.LoadUint64(&m.upstreamCount),
		Goroutines:     runtime.NumGoroutine(),
		GeneratedAtUTC: time.Now().UTC(),
	}
}
