package metrics

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTechnicalCounters(t *testing.T) {
	path := "/api/archive/{month}"
	method := http.MethodGet

	before := testutil.ToFloat64(RestRequestsTotal.WithLabelValues(path))
	IncRestRequestsTotal(path)
	require.Equal(t, before+1, testutil.ToFloat64(RestRequestsTotal.WithLabelValues(path)))

	status := http.StatusText(http.StatusOK)
	beforeStatus := testutil.ToFloat64(RestEndpointsResponsesTotal.WithLabelValues(path, status))
	IncRestResponsesStatusesTotal(path, http.StatusOK)
	require.Equal(t, beforeStatus+1, testutil.ToFloat64(RestEndpointsResponsesTotal.WithLabelValues(path, status)))

	IncRestResponsesDuration(path, method, 25*time.Millisecond)
	ObserveRequestSize(method, path, 0)
	ObserveRequestSize(http.MethodPost, "/api/board/refresh", 128)
}

func TestLiveClientsGauge(t *testing.T) {
	before := testutil.ToFloat64(LiveClients)
	LiveClients.Inc()
	require.Equal(t, before+1, testutil.ToFloat64(LiveClients))
	LiveClients.Dec()
	require.Equal(t, before, testutil.ToFloat64(LiveClients))
}

func TestObserveHTTPRequest(t *testing.T) {
	endpoint := "/api/board"
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, endpoint, "200"))
	ObserveHTTPRequest(http.MethodGet, endpoint, http.StatusOK, 15*time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, endpoint, "200")))
}
