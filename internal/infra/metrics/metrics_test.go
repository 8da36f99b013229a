package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

func TestMetrics_AnalysisCounters(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	m.AnalysisCompleted(analysis.KindHabitat, analysis.SourceFallback, 2*time.Second)
	m.AnalysisCompleted(analysis.KindHabitat, analysis.SourceFallback, time.Second)
	m.FailureRecorded(analysis.KindHabitat, analysis.PhaseRemote)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analysesTotal.WithLabelValues("habitat", "fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failuresTotal.WithLabelValues("habitat", "remote")))
}

func TestMetrics_Handler(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	done := m.RequestStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsInFlight))
	done(http.MethodPost, "/v1/{tenant}/habitat", http.StatusOK, 150*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `ecosense_http_requests_total{method="POST",route="/v1/{tenant}/habitat",status="200"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}
