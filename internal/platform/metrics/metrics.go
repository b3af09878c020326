package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Poll outcomes used as the "outcome" label.
const (
	OutcomeLive  = "live"
	OutcomeError = "error"
)

// Metrics holds Prometheus counters and gauges for the live monitor.
type Metrics struct {
	registry       *prometheus.Registry
	requestsTotal  prometheus.Counter
	errorsTotal    prometheus.Counter
	pollsTotal     *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	activeMonitors prometheus.Gauge
	streamers      prometheus.Gauge
}

// New creates and registers Prometheus metrics for the monitor.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "live_monitor_requests_total",
		Help: "Total number of admin API requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "live_monitor_errors_total",
		Help: "Total number of admin API responses with error status (4xx or 5xx)",
	})
	pollsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "live_monitor_polls_total",
		Help: "Inspector calls by platform and outcome",
	}, []string{"platform", "outcome"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "live_monitor_transitions_total",
		Help: "Streamer status transitions",
	}, []string{"platform", "from", "to"})
	activeMonitors := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "live_monitor_active_monitors",
		Help: "Number of running per-platform monitor tasks",
	})
	streamers := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "live_monitor_streamers",
		Help: "Number of monitored streamer URLs",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		pollsTotal,
		transitions,
		activeMonitors,
		streamers,
	)

	return &Metrics{
		registry:       registry,
		requestsTotal:  requestsTotal,
		errorsTotal:    errorsTotal,
		pollsTotal:     pollsTotal,
		transitions:    transitions,
		activeMonitors: activeMonitors,
		streamers:      streamers,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// ObservePoll counts one inspector call.
func (m *Metrics) ObservePoll(platform, outcome string) {
	m.pollsTotal.WithLabelValues(platform, outcome).Inc()
}

// ObserveTransition counts a status change.
func (m *Metrics) ObserveTransition(platform, from, to string) {
	m.transitions.WithLabelValues(platform, from, to).Inc()
}

// MonitorStarted and MonitorStopped track the number of live monitor tasks.
func (m *Metrics) MonitorStarted() { m.activeMonitors.Inc() }

func (m *Metrics) MonitorStopped() { m.activeMonitors.Dec() }

// SetStreamers sets the monitored streamers gauge.
func (m *Metrics) SetStreamers(n int) {
	m.streamers.Set(float64(n))
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
