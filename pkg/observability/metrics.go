// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the graphgate gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// GraphBuckets defines histogram buckets suited for graph execution
// latencies, ranging from 100ms to 120s.
var GraphBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method, status class, and path.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphgate_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "path"},
	)

	// RequestDuration records HTTP request duration in seconds by method and path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphgate_request_duration_seconds",
			Help:    "Request duration",
			Buckets: GraphBuckets,
		},
		[]string{"method", "path"},
	)

	// StreamingConnections tracks the number of active SSE streaming connections.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphgate_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// GraphInvocationsTotal counts graph runner invocations by runner,
	// mode (invoke/stream), and outcome.
	GraphInvocationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphgate_graph_invocations_total",
			Help: "Graph runner invocations",
		},
		[]string{"runner", "mode", "status"},
	)

	// GraphLatency records graph runner latency in seconds by runner and mode.
	GraphLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphgate_graph_latency_seconds",
			Help:    "Graph runner latency",
			Buckets: GraphBuckets,
		},
		[]string{"runner", "mode"},
	)

	// TokensTotal counts tokens by direction (prompt/completion) and
	// source (engine-reported vs estimated).
	TokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphgate_tokens_total",
			Help: "Token count",
		},
		[]string{"direction", "source"},
	)

	// StoredConversations tracks the number of conversations currently
	// held for chaining.
	StoredConversations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "graphgate_stored_conversations",
			Help: "Conversations held in the ephemeral store",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		GraphInvocationsTotal,
		GraphLatency,
		TokensTotal,
		StoredConversations,
	)
}
