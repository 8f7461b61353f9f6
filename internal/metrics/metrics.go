package metrics

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds process-wide request counters. Values live in memory only
// and start from zero on every restart.
type Registry struct {
	started time.Time

	requestsTotal atomic.Int64
	currentWindow atomic.Int64
	lastWindow    atomic.Int64
	windowRolled  atomic.Bool
	dbLatencyNS   atomic.Int64

	prom              *prometheus.Registry
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	assignments       *prometheus.CounterVec
	dbLatencySeconds  prometheus.Gauge
	dbOpenConnections prometheus.Gauge
	dbInUse           prometheus.Gauge
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Registry{
		started: time.Now(),
		prom:    reg,
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pm_http_requests_total",
				Help: "Total number of HTTP requests handled",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pm_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		assignments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pm_assignments_total",
				Help: "Tenant assignment attempts by outcome",
			},
			[]string{"outcome"},
		),
		dbLatencySeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pm_database_latency_seconds",
			Help: "Last sampled database ping latency",
		}),
		dbOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pm_database_open_connections",
			Help: "Open connections in the database pool",
		}),
		dbInUse: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pm_database_in_use_connections",
			Help: "Connections currently checked out of the pool",
		}),
	}
}

// ObserveRequest counts one finished HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	r.requestsTotal.Add(1)
	r.currentWindow.Add(1)
	if route == "" {
		route = "unmatched"
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordAssignment counts one assignment outcome.
func (r *Registry) RecordAssignment(outcome string) {
	r.assignments.WithLabelValues(outcome).Inc()
}

// RollWindow closes the current one-minute window.
func (r *Registry) RollWindow() {
	r.lastWindow.Store(r.currentWindow.Swap(0))
	r.windowRolled.Store(true)
}

// RequestsPerMinute returns the last complete window, or the running count
// before the first roll.
func (r *Registry) RequestsPerMinute() int64 {
	if !r.windowRolled.Load() {
		return r.currentWindow.Load()
	}
	return r.lastWindow.Load()
}

func (r *Registry) RequestsTotal() int64 {
	return r.requestsTotal.Load()
}

func (r *Registry) Uptime() time.Duration {
	return time.Since(r.started)
}

func (r *Registry) SetDBLatency(d time.Duration) {
	r.dbLatencyNS.Store(int64(d))
	r.dbLatencySeconds.Set(d.Seconds())
}

func (r *Registry) DBLatency() time.Duration {
	return time.Duration(r.dbLatencyNS.Load())
}

func (r *Registry) SetPoolStats(open, inUse int) {
	r.dbOpenConnections.Set(float64(open))
	r.dbInUse.Set(float64(inUse))
}

// Reset zeroes the in-memory counters.
func (r *Registry) Reset() {
	r.requestsTotal.Store(0)
	r.currentWindow.Store(0)
	r.lastWindow.Store(0)
	r.windowRolled.Store(false)
	r.dbLatencyNS.Store(0)
}

// Handler serves the prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prom, promhttp.HandlerOpts{Registry: r.prom})
}

// Gatherer exposes the underlying prometheus registry for tests and exporters.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.prom
}
