package taler

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records backend traffic. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	failures *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taler",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Requests sent to the merchant backend by method and HTTP status (0 for transport failures).",
		}, []string{"method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "taler",
			Subsystem: "backend",
			Name:      "request_duration_seconds",
			Help:      "Latency of merchant backend requests.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"method"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "taler",
			Subsystem: "backend",
			Name:      "transport_failures_total",
			Help:      "Backend calls that produced no HTTP status, by failure code.",
		}, []string{"code"}),
	}
	reg.MustRegister(m.requests, m.duration, m.failures)
	return m
}

func (m *Metrics) observe(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func (m *Metrics) failure(code string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(code).Inc()
}
