package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/infra/metrics"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(GetTenantFromContext(r.Context())))
}

func TestAPIKeyAuth(t *testing.T) {
	h := APIKeyAuth(map[string]string{"acme": "secret-1"})(http.HandlerFunc(okHandler))

	tests := []struct {
		name   string
		path   string
		header string
		code   int
		body   string
	}{
		{"missing header", "/v1/acme/analyses", "", http.StatusUnauthorized, ""},
		{"wrong key", "/v1/acme/analyses", "Bearer nope", http.StatusUnauthorized, ""},
		{"bearer key", "/v1/acme/analyses", "Bearer secret-1", http.StatusOK, "acme"},
		{"bare key", "/v1/acme/analyses", "secret-1", http.StatusOK, "acme"},
		{"open path", "/livez", "", http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.code == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestAPIKeyAuth_NoKeysDisablesAuth(t *testing.T) {
	h := APIKeyAuth(nil)(http.HandlerFunc(okHandler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireTenant(t *testing.T) {
	r := chi.NewRouter()
	r.Use(APIKeyAuth(map[string]string{"acme": "k1"}))
	r.With(RequireTenant).Get("/v1/{tenant}/ping", okHandler)

	do := func(path string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer k1")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("/v1/acme/ping"))
	assert.Equal(t, http.StatusForbidden, do("/v1/other/ping"))
	assert.Equal(t, http.StatusBadRequest, do("/v1/bad$tenant/ping"))
}

func TestLogger_AddsRequestIDAndContextLogger(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	var fromCtx *zerolog.Logger

	h := Logger(&l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = zerolog.Ctx(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
	require.NotNil(t, fromCtx)
	assert.NotEqual(t, zerolog.Disabled, fromCtx.GetLevel())

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), line["request_id"])
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	m, err := metrics.New()
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/v1/{tenant}/analyses", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/beta/analyses", nil))

	n, err := testutil.GatherAndCount(m.Registry(), "ecosense_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "both tenants share one series")
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter := NewRateLimiter(ctx, 0.001, 2)
	h := RateLimit(limiter)(http.HandlerFunc(okHandler))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
		if rec.Code == http.StatusTooManyRequests {
			assert.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{200, 200, 429}, codes)

	// another client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	ok := CheckFunc(func(context.Context) error { return nil })
	down := CheckFunc(func(context.Context) error { return errors.New("db down") })

	tests := []struct {
		name     string
		critical map[string]HealthChecker
		optional map[string]HealthChecker
		code     int
		status   string
	}{
		{"healthy", map[string]HealthChecker{"db": ok}, map[string]HealthChecker{"remote": RemoteChecker{Configured: func() bool { return true }}}, 200, StatusHealthy},
		{"degraded", map[string]HealthChecker{"db": ok}, map[string]HealthChecker{"remote": RemoteChecker{}}, 200, StatusDegraded},
		{"unhealthy", map[string]HealthChecker{"db": down}, map[string]HealthChecker{"remote": RemoteChecker{}}, 503, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthHandler(tt.critical, tt.optional)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.code, rec.Code)
			var body HealthStatus
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.status, body.Status)
		})
	}
}

func TestReadinessHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	ReadinessHandler(map[string]HealthChecker{"db": CheckFunc(func(context.Context) error { return errors.New("x") })})(
		rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	ReadinessHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{G: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidateUpload(t *testing.T) {
	ct, err := ValidateUpload(pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, err = ValidateUpload(nil)
	assert.ErrorIs(t, err, analysis.ErrImageRequired)

	var ve *analysis.ValidationError
	_, err = ValidateUpload([]byte("just some text"))
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "image", ve.Field)

	_, err = ValidateUpload(make([]byte, MaxImageBytes+1))
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Message, "10 MB")
}

func TestValidators(t *testing.T) {
	assert.NoError(t, ValidateTenantID("acme_01"))
	assert.Error(t, ValidateTenantID(""))
	assert.Error(t, ValidateTenantID(strings.Repeat("a", 65)))

	assert.NoError(t, ValidateAnalysisID("0b6b6f9e-4f38-4c0e-9a5e-6f1e2f3a4b5c"))
	assert.Error(t, ValidateAnalysisID("../etc"))

	k, err := ValidateKind(" Carbon ")
	require.NoError(t, err)
	assert.Equal(t, analysis.KindCarbon, k)
	_, err = ValidateKind("volcano")
	assert.Error(t, err)

	clean, err := ValidateText("location", "  Borneo\x00\x07 ")
	require.NoError(t, err)
	assert.Equal(t, "Borneo", clean)
	_, err = ValidateText("notes", strings.Repeat("x", MaxTextLen+1))
	assert.Error(t, err)

	assert.Equal(t, 1, ValidatePage("-3"))
	assert.Equal(t, 4, ValidatePage("4"))
	assert.Equal(t, 20, ValidateLimit(""))
	assert.Equal(t, 100, ValidateLimit("1000"))
}
