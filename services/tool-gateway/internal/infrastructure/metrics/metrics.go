package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Gateway metrics, registered explicitly with the default registry.
var (
	RequestsTotal *prometheus.CounterVec

	ToolCallsTotal *prometheus.CounterVec

	ToolDuration *prometheus.HistogramVec

	CircuitBreakerState *prometheus.GaugeVec

	AuditFailuresTotal prometheus.Counter
)

func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealermate",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served by the gateway",
		},
		[]string{"method", "route", "status"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dealermate",
			Subsystem: "gateway",
			Name:      "tool_calls_total",
			Help:      "Total upstream tool invocations",
		},
		[]string{"tool_name", "upstream", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dealermate",
			Subsystem: "gateway",
			Name:      "tool_duration_seconds",
			Help:      "Upstream tool call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		},
		[]string{"tool_name", "upstream"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "dealermate",
			Subsystem: "gateway",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 0.5=half-open, 1=open)",
		},
		[]string{"upstream"},
	)

	AuditFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "dealermate",
			Subsystem: "gateway",
			Name:      "audit_failures_total",
			Help:      "Audit events that could not be appended",
		},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolDuration)
	prometheus.MustRegister(CircuitBreakerState)
	prometheus.MustRegister(AuditFailuresTotal)
}

// RecordRequest records a served HTTP request
func RecordRequest(method, route, status string) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
}

// RecordToolCall records an upstream invocation
func RecordToolCall(toolName, upstream, status string, durationSec float64) {
	if upstream == "" {
		upstream = "unknown"
	}
	if status == "" {
		status = "unknown"
	}
	ToolCallsTotal.WithLabelValues(toolName, upstream, status).Inc()
	ToolDuration.WithLabelValues(toolName, upstream).Observe(durationSec)
}

// SetCircuitBreakerState sets the circuit breaker state
func SetCircuitBreakerState(upstream string, state string) {
	var val float64
	switch state {
	case "closed":
		val = 0.0
	case "half-open":
		val = 0.5
	case "open":
		val = 1.0
	}
	CircuitBreakerState.WithLabelValues(upstream).Set(val)
}

// RecordAuditFailure counts a swallowed audit sink error
func RecordAuditFailure() {
	AuditFailuresTotal.Inc()
}
