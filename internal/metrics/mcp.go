package metrics

import "github.com/prometheus/client_golang/prometheus"

// Tool, backend, and cache Prometheus metrics.
var (
	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sevamcp",
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool calls",
		},
		[]string{"tool", "status"},
	)

	ToolCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sevamcp",
			Name:      "tool_call_duration_seconds",
			Help:      "MCP tool call duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"tool"},
	)

	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sevamcp",
			Name:      "backend_requests_total",
			Help:      "Total number of backend API requests",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "sevamcp",
			Name:      "backend_request_duration_seconds",
			Help:      "Backend API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	CatalogCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "sevamcp",
			Name:      "catalog_cache_total",
			Help:      "Catalog cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var mcpMetricsRegistered bool

// RegisterMCPMetrics registers tool/backend/cache metrics. Must be called
// once from main.
func RegisterMCPMetrics() {
	if mcpMetricsRegistered {
		return
	}
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolCallDuration)
	prometheus.MustRegister(BackendRequestsTotal)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(CatalogCacheTotal)
	mcpMetricsRegistered = true
}
