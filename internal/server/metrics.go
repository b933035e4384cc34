package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/sysgauge/internal/sysmon"
)

// Metrics holds the exported gauges in a private registry, so several
// instances can coexist in one process (tests, mostly).
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	cpuPercent     prometheus.Gauge
	memoryPercent  prometheus.Gauge
	cores          prometheus.Gauge
	ticksTotal     prometheus.Counter
	sampleErrors   prometheus.Counter
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysgauge_cpu_percent",
			Help: "Sum of per-core CPU utilization at the last tick (may exceed 100).",
		}),
		memoryPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysgauge_memory_percent",
			Help: "Used share of virtual memory at the last tick.",
		}),
		cores: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysgauge_cpu_cores",
			Help: "Number of logical cores contributing to sysgauge_cpu_percent.",
		}),
		ticksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sysgauge_ticks_total",
			Help: "Number of completed sample-and-redraw ticks.",
		}),
		sampleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sysgauge_sample_errors_total",
			Help: "Number of failed metric samples.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sysgauge_active_requests",
			Help: "Number of scrape requests being served.",
		}),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sysgauge_requests_total",
			Help: "Number of HTTP requests by path and status.",
		}, []string{"path", "status"}),
	}

	reg.MustRegister(
		m.cpuPercent,
		m.memoryPercent,
		m.cores,
		m.ticksTotal,
		m.sampleErrors,
		m.activeRequests,
		m.requestsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// ObserveSample records one successful tick.
func (m *Metrics) ObserveSample(s sysmon.Snapshot) {
	m.cpuPercent.Set(s.CPU.Value)
	m.memoryPercent.Set(s.RAM.Value)
	m.cores.Set(float64(s.Cores))
	m.ticksTotal.Inc()
}

// ObserveError records one failed sample.
func (m *Metrics) ObserveError(error) {
	m.sampleErrors.Inc()
}

// IncrementActiveRequests marks the start of a request.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests marks the end of a request.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(path, status string) {
	m.requestsTotal.WithLabelValues(path, status).Inc()
}

// WritePrometheus writes the exposition format to w.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
