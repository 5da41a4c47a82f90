package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Workflow(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordApplicationSubmitted()
	c.RecordApplicationSubmitted()
	c.RecordDuplicateApplication()
	c.RecordStatusChange("Applied", "Shortlisted")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.applicationsSubmitted))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.duplicateApplications))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.statusChanges.WithLabelValues("Applied", "Shortlisted")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.statusChanges.WithLabelValues("Applied", "Rejected")))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordRequest(http.MethodGet, "/api/jobs", http.StatusOK, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `jobportal_http_requests_total{method="GET",route="/api/jobs",status_code="200"} 1`)
}
