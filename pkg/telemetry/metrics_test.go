package telemetry

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCounters(t *testing.T) { //nolint:paralleltest // Shares the default prometheus registry
	RecordToolInvocation("list_autobahns", OutcomeSuccess)
	RecordToolInvocation("list_autobahns", OutcomeSuccess)
	RecordToolInvocation("get_traffic_warnings", "unknown_highway")
	RecordUpstreamRequest("warnings", OutcomeSuccess)

	assert.Equal(t, 2.0,
		testutil.ToFloat64(toolInvocations.WithLabelValues("list_autobahns", OutcomeSuccess)))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(toolInvocations.WithLabelValues("get_traffic_warnings", "unknown_highway")))
	assert.Equal(t, 1.0,
		testutil.ToFloat64(upstreamRequests.WithLabelValues("warnings", OutcomeSuccess)))
}

func TestMetricsHandler(t *testing.T) { //nolint:paralleltest // Shares the default prometheus registry
	RecordUpstreamRequest("closures", OutcomeSuccess)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	Handler().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "autobahn_mcp_upstream_requests_total")
}
