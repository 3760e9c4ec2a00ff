package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Assistant metrics, registered explicitly with the default registry.
var (
	RequestsTotal *prometheus.CounterVec

	AssistTotal *prometheus.CounterVec

	AssistDuration *prometheus.HistogramVec
)

func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealermate",
			Subsystem: "assistant",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served by the assistant",
		},
		[]string{"method", "route", "status"},
	)

	AssistTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealermate",
			Subsystem: "assistant",
			Name:      "assist_total",
			Help:      "Assist invocations by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	AssistDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealermate",
			Subsystem: "assistant",
			Name:      "assist_duration_seconds",
			Help:      "End-to-end assist latency in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"intent"},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(AssistTotal)
	prometheus.MustRegister(AssistDuration)
}

// RecordRequest records a served HTTP request
func RecordRequest(method, route, status string) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
}

// RecordAssist records one assist invocation
func RecordAssist(intent, outcome string, durationSec float64) {
	AssistTotal.WithLabelValues(intent, outcome).Inc()
	AssistDuration.WithLabelValues(intent).Observe(durationSec)
}
