package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestWindow(t *testing.T) {
	r := New()

	r.ObserveRequest("GET", "/properties/", 200, time.Millisecond)
	r.ObserveRequest("GET", "/properties/", 200, time.Millisecond)
	assert.EqualValues(t, 2, r.RequestsPerMinute(), "running count before first roll")

	r.RollWindow()
	r.ObserveRequest("POST", "/tenants/", 201, time.Millisecond)

	assert.EqualValues(t, 2, r.RequestsPerMinute())
	assert.EqualValues(t, 3, r.RequestsTotal())

	r.RollWindow()
	assert.EqualValues(t, 1, r.RequestsPerMinute())
}

func TestReset(t *testing.T) {
	r := New()
	r.ObserveRequest("GET", "/", 200, 0)
	r.SetDBLatency(5 * time.Millisecond)
	r.RollWindow()

	r.Reset()
	assert.Zero(t, r.RequestsTotal())
	assert.Zero(t, r.RequestsPerMinute())
	assert.Zero(t, r.DBLatency())
}

func TestPrometheusCollectors(t *testing.T) {
	r := New()
	r.ObserveRequest("GET", "", 404, time.Millisecond)
	r.RecordAssignment("success")
	r.RecordAssignment("conflict")
	r.RecordAssignment("conflict")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `pm_assignments_total{outcome="conflict"} 2`))
	assert.True(t, strings.Contains(body, `pm_http_requests_total{method="GET",route="unmatched",status="404"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
