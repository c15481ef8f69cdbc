// Package telemetry exposes prometheus instrumentation for the server:
// per-tool invocation counts and per-category upstream request counts.
// The metrics endpoint is served alongside the streamable HTTP transport.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// OutcomeSuccess labels a successful operation.
	OutcomeSuccess = "success"
)

var (
	toolInvocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobahn_mcp_tool_invocations_total",
			Help: "MCP tool invocations by tool name and outcome.",
		},
		[]string{"tool", "outcome"},
	)

	upstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autobahn_mcp_upstream_requests_total",
			Help: "Upstream API requests by resource category and outcome.",
		},
		[]string{"category", "outcome"},
	)
)

// RecordToolInvocation counts one MCP tool call. The outcome is "success"
// or the structured error kind reported to the client.
func RecordToolInvocation(tool, outcome string) {
	toolInvocations.WithLabelValues(tool, outcome).Inc()
}

// RecordUpstreamRequest counts one settled upstream API call (retries
// included in a single settlement).
func RecordUpstreamRequest(category, outcome string) {
	upstreamRequests.WithLabelValues(category, outcome).Inc()
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
