package infra

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsSummary_CounterAndHistogram(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest(http.MethodGet, "/trabajos/get-all", 200, 30*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/trabajos/get-all", 200, 40*time.Millisecond)
	m.ObserveJob("jobs:email", "ok")

	summary, err := m.Summary()
	require.NoError(t, err)

	req, ok := summary["http_requests_total"]
	require.True(t, ok)
	assert.Equal(t, "counter", req.Type)
	require.Len(t, req.Values, 1)
	assert.Equal(t, float64(2), req.Values[0].Value)
	assert.Equal(t, "/trabajos/get-all", req.Values[0].Labels["route"])

	assert.Equal(t, "histogram", summary["http_request_duration_seconds"].Type)
	count := summary["http_request_duration_seconds_count"]
	require.NotNil(t, count)
	assert.Equal(t, float64(2), count.Values[0].Value)

	jobs := summary["jobs_processed_total"]
	require.NotNil(t, jobs)
	assert.Equal(t, "ok", jobs.Values[0].Labels["result"])

	assert.Contains(t, SortedNames(summary), "go_goroutines")
}

func TestMetricsHandler_TextExposition(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest(http.MethodPost, "", 404, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, `route="unmatched"`))
	assert.Contains(t, body, "# TYPE http_requests_total counter")
}
