package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	domai "github.com/bryanwahyu/ecosense/internal/domain/ai"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/domain/carbon"
	"github.com/bryanwahyu/ecosense/internal/domain/habitat"
	"github.com/bryanwahyu/ecosense/internal/domain/reforestation"
	"github.com/bryanwahyu/ecosense/internal/domain/species"
	"github.com/bryanwahyu/ecosense/internal/infra/metrics"
)

const testID = "0b6b6f9e-4f38-4c0e-9a5e-6f1e2f3a4b5c"

type stubHabitat struct{ got habitat.Request }

func (s *stubHabitat) Analyze(_ context.Context, tenant string, req habitat.Request) (*pipeline.Report[habitat.Result], error) {
	s.got = req
	return &pipeline.Report[habitat.Result]{
		ID: testID, Kind: analysis.KindHabitat, Source: analysis.SourceRemote,
		Result: habitat.Result{HabitatType: "Forest", Confidence: 0.9},
	}, nil
}

type stubSpecies struct{ err error }

func (s *stubSpecies) Analyze(context.Context, string, species.Request) (*pipeline.Report[species.Result], error) {
	return nil, s.err
}

type stubCarbon struct{ got carbon.Request }

func (s *stubCarbon) Analyze(_ context.Context, _ string, req carbon.Request) (*pipeline.Report[carbon.Result], error) {
	s.got = req
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &pipeline.Report[carbon.Result]{Kind: analysis.KindCarbon, Source: analysis.SourceFallback,
		Result: carbon.Result{TotalEmissions: 2100.8}}, nil
}

type stubReforestation struct{ got reforestation.Request }

func (s *stubReforestation) Analyze(_ context.Context, _ string, req reforestation.Request) (*pipeline.Report[reforestation.Result], error) {
	s.got = req
	return &pipeline.Report[reforestation.Result]{Kind: analysis.KindReforestation}, nil
}

type stubAnalyses struct {
	gotKind analysis.Kind
	gotPage int
	gotSize int
}

func (s *stubAnalyses) List(_ context.Context, _ string, kind analysis.Kind, page, size int) ([]*analysis.Record, error) {
	s.gotKind, s.gotPage, s.gotSize = kind, page, size
	if kind == analysis.KindSpecies {
		return nil, nil
	}
	return []*analysis.Record{{ID: testID}}, nil
}

func (s *stubAnalyses) Get(_ context.Context, tenant string, id analysis.AnalysisID) (*analysis.Record, error) {
	if tenant != "acme" {
		return nil, analysis.ErrNotFound
	}
	return &analysis.Record{ID: id, TenantID: tenant}, nil
}

func (s *stubAnalyses) ListFailures(context.Context, string, analysis.AnalysisID) ([]*analysis.Failure, error) {
	return nil, nil
}

func (s *stubAnalyses) Report(_ context.Context, _ string, id analysis.AnalysisID) (string, error) {
	return "# Report " + string(id), nil
}

type fixture struct {
	handler       http.Handler
	habitat       *stubHabitat
	species       *stubSpecies
	carbon        *stubCarbon
	reforestation *stubReforestation
	analyses      *stubAnalyses
	metrics       *metrics.Metrics
}

func newFixture(t *testing.T, keys map[string]string) *fixture {
	t.Helper()
	m, err := metrics.New()
	require.NoError(t, err)
	f := &fixture{
		habitat:       &stubHabitat{},
		species:       &stubSpecies{},
		carbon:        &stubCarbon{},
		reforestation: &stubReforestation{},
		analyses:      &stubAnalyses{},
		metrics:       m,
	}
	f.handler = NewRouter(Services{
		Habitat:       f.habitat,
		Species:       f.species,
		Carbon:        f.carbon,
		Reforestation: f.reforestation,
		Analyses:      f.analyses,
	}, Options{Metrics: m, APIKeys: keys, CORSOrigins: []string{"https://app.example.test"}})
	return f
}

func pngImage(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{G: 180, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, path string, image []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "forest.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHabitatUpload(t *testing.T) {
	// Given
	f := newFixture(t, nil)
	req := multipartRequest(t, "/v1/acme/habitat", pngImage(t), map[string]string{
		"location":     " Borneo ",
		"habitat_type": "forest",
	})

	// When
	rec := serve(f.handler, req)

	// Then
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Borneo", f.habitat.got.Location)
	assert.Equal(t, "forest", f.habitat.got.Category)
	require.NotNil(t, f.habitat.got.Upload)
	assert.Equal(t, "image/png", f.habitat.got.Upload.ContentType)
	assert.Equal(t, "forest.png", f.habitat.got.Upload.Filename)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "remote", body["source"])
	assert.Equal(t, "Forest", body["result"].(map[string]any)["habitatType"])
}

func TestUploadValidation(t *testing.T) {
	f := newFixture(t, nil)

	tests := []struct {
		name  string
		req   *http.Request
		field string
	}{
		{"missing image", multipartRequest(t, "/v1/acme/habitat", nil, map[string]string{"location": "x"}), "image"},
		{"not an image", multipartRequest(t, "/v1/acme/species", []byte("hello world, plain text"), nil), "image"},
		{"not multipart", httptest.NewRequest(http.MethodPost, "/v1/acme/habitat", strings.NewReader("{}")), "body"},
		{"bad area", multipartRequest(t, "/v1/acme/reforestation", pngImage(t), map[string]string{"area_ha": "lots"}), "area_ha"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(f.handler, tt.req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.field, body["field"])
		})
	}
}

func TestReforestationArea(t *testing.T) {
	f := newFixture(t, nil)
	rec := serve(f.handler, multipartRequest(t, "/v1/acme/reforestation", pngImage(t), map[string]string{
		"area_ha": "12.5", "climate": "tropical", "soil_type": "Clay",
	}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 12.5, f.reforestation.got.AreaHectares)
	assert.Equal(t, "tropical", f.reforestation.got.Climate)

	for _, bad := range []string{"Inf", "NaN", "-inf", "lots"} {
		rec = serve(f.handler, multipartRequest(t, "/v1/acme/reforestation", pngImage(t), map[string]string{"area_ha": bad}))
		assert.Equal(t, http.StatusBadRequest, rec.Code, bad)
		assert.Contains(t, rec.Body.String(), `"field":"area_ha"`, bad)
	}
}

func TestCarbon(t *testing.T) {
	f := newFixture(t, nil)

	rec := serve(f.handler, httptest.NewRequest(http.MethodPost, "/v1/acme/carbon",
		strings.NewReader(`{"activities":{"car_miles_per_week":100}}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100.0, f.carbon.got.Activities[carbon.CarMiles])

	rec = serve(f.handler, httptest.NewRequest(http.MethodPost, "/v1/acme/carbon",
		strings.NewReader(`{"activities":{"car_miles_per_week":0}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(f.handler, httptest.NewRequest(http.MethodPost, "/v1/acme/carbon",
		strings.NewReader(`{"activities":{"bike_km":50}}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"bike_km"`)

	rec = serve(f.handler, httptest.NewRequest(http.MethodPost, "/v1/acme/carbon", strings.NewReader(`nope`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"quota", domai.NewStatusError(http.StatusTooManyRequests, "slow down"), http.StatusTooManyRequests},
		{"not found", fmt.Errorf("lookup: %w", analysis.ErrNotFound), http.StatusNotFound},
		{"other", fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.species.err = tt.err

			rec := serve(f.handler, multipartRequest(t, "/v1/acme/species", pngImage(t), nil))

			assert.Equal(t, tt.code, rec.Code)
			assert.NotContains(t, rec.Body.String(), "disk on fire")
		})
	}
}

func TestAnalysesRoutes(t *testing.T) {
	f := newFixture(t, nil)

	rec := serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses?kind=habitat&page=2&page_size=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, analysis.KindHabitat, f.analyses.gotKind)
	assert.Equal(t, 2, f.analyses.gotPage)
	assert.Equal(t, 5, f.analyses.gotSize)

	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses?kind=volcano", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// empty page still encodes items as an array
	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses?kind=species", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)

	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/"+testID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/other/analyses/"+testID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/"+testID+"/failures", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/"+testID+"/report", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/markdown; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "# Report "+testID, rec.Body.String())
}

func TestAuthAndOpenEndpoints(t *testing.T) {
	f := newFixture(t, map[string]string{"acme": "key-1"})

	rec := serve(f.handler, httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/beta/analyses", nil)
	req.Header.Set("Authorization", "Bearer key-1")
	assert.Equal(t, http.StatusForbidden, serve(f.handler, req).Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/acme/analyses", nil)
	req.Header.Set("Authorization", "Bearer key-1")
	assert.Equal(t, http.StatusOK, serve(f.handler, req).Code)

	assert.Equal(t, http.StatusOK, serve(f.handler, httptest.NewRequest(http.MethodGet, "/health", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(f.handler, httptest.NewRequest(http.MethodGet, "/livez", nil)).Code)

	rec = serve(f.handler, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ecosense_http_requests_total")
}

func TestCORSPreflight(t *testing.T) {
	f := newFixture(t, map[string]string{"acme": "key-1"})
	req := httptest.NewRequest(http.MethodOptions, "/v1/acme/habitat", nil)
	req.Header.Set("Origin", "https://app.example.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := serve(f.handler, req)

	assert.Equal(t, "https://app.example.test", rec.Header().Get("Access-Control-Allow-Origin"))
}
