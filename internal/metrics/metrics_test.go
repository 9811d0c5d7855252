package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestRecorders(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.RecordLogin(ResultSuccess)
	m.RecordLogin(ResultFailure)
	m.RecordLogin(ResultFailure)
	m.RecordRegistration(ResultSuccess)
	m.RecordEnrollment(ResultError)
	m.ObserveRequest("/kegiatan", http.MethodGet, http.StatusOK, 5*time.Millisecond)

	out := scrape(t, m)
	assert.Contains(t, out, `kegiatan_logins_total{result="failure"} 2`)
	assert.Contains(t, out, `kegiatan_logins_total{result="success"} 1`)
	assert.Contains(t, out, `kegiatan_registrations_total{result="success"} 1`)
	assert.Contains(t, out, `kegiatan_enrollments_total{result="error"} 1`)
	assert.Contains(t, out, `http_requests_total{method="GET",route="/kegiatan",status="200"} 1`)
	assert.Contains(t, out, `http_request_duration_seconds_count{method="GET",route="/kegiatan",status="200"} 1`)
}

func TestNewWithRuntime(t *testing.T) {
	out := scrape(t, NewWithRuntime())
	assert.Contains(t, out, "go_goroutines")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordLogin(ResultSuccess)
		m.RecordRegistration(ResultSuccess)
		m.RecordEnrollment(ResultSuccess)
		m.ObserveRequest("/", http.MethodGet, http.StatusOK, time.Millisecond)
	})
	assert.NotNil(t, m.Handler())
}
