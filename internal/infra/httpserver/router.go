package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	domai "github.com/bryanwahyu/ecosense/internal/domain/ai"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/domain/carbon"
	"github.com/bryanwahyu/ecosense/internal/domain/habitat"
	"github.com/bryanwahyu/ecosense/internal/domain/reforestation"
	"github.com/bryanwahyu/ecosense/internal/domain/species"
	"github.com/bryanwahyu/ecosense/internal/infra/metrics"
	"github.com/bryanwahyu/ecosense/internal/middleware"
)

type HabitatAnalyzer interface {
	Analyze(ctx context.Context, tenant string, req habitat.Request) (*pipeline.Report[habitat.Result], error)
}

type SpeciesAnalyzer interface {
	Analyze(ctx context.Context, tenant string, req species.Request) (*pipeline.Report[species.Result], error)
}

type CarbonAnalyzer interface {
	Analyze(ctx context.Context, tenant string, req carbon.Request) (*pipeline.Report[carbon.Result], error)
}

type ReforestationAnalyzer interface {
	Analyze(ctx context.Context, tenant string, req reforestation.Request) (*pipeline.Report[reforestation.Result], error)
}

// AnalysesReader is the read side over stored analyses
type AnalysesReader interface {
	List(ctx context.Context, tenant string, kind analysis.Kind, page, pageSize int) ([]*analysis.Record, error)
	Get(ctx context.Context, tenant string, id analysis.AnalysisID) (*analysis.Record, error)
	ListFailures(ctx context.Context, tenant string, id analysis.AnalysisID) ([]*analysis.Failure, error)
	Report(ctx context.Context, tenant string, id analysis.AnalysisID) (string, error)
}

// Services groups the application services served over HTTP
type Services struct {
	Habitat       HabitatAnalyzer
	Species       SpeciesAnalyzer
	Carbon        CarbonAnalyzer
	Reforestation ReforestationAnalyzer
	Analyses      AnalysesReader
}

// Options configures the middleware stack. Zero values switch the
// corresponding layer off.
type Options struct {
	Logger      *zerolog.Logger
	Metrics     *metrics.Metrics
	APIKeys     map[string]string
	RateLimiter *middleware.RateLimiter
	CORSOrigins []string
	// Health checks: a failing critical check is 503, optional only degrades.
	Critical map[string]middleware.HealthChecker
	Optional map[string]middleware.HealthChecker
}

// form uploads carry the image plus a few short text fields
const maxFormBytes = middleware.MaxImageBytes + 1<<20

const maxJSONBytes = 1 << 20

type Router struct {
	svc Services
}

func NewRouter(svc Services, opts Options) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	if opts.Logger != nil {
		mux.Use(middleware.Logger(opts.Logger))
	}
	if opts.Metrics != nil {
		mux.Use(middleware.Metrics(opts.Metrics))
	}
	if len(opts.CORSOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}
	mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	if opts.RateLimiter != nil {
		mux.Use(middleware.RateLimit(opts.RateLimiter))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Critical, opts.Optional))
	mux.Get("/readyz", middleware.ReadinessHandler(opts.Critical))
	mux.Get("/livez", middleware.LivenessHandler)
	if opts.Metrics != nil {
		mux.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(middleware.RequireTenant)
		rt.Post("/habitat", r.wrap(r.handleHabitat))
		rt.Post("/species", r.wrap(r.handleSpecies))
		rt.Post("/reforestation", r.wrap(r.handleReforestation))
		rt.Post("/carbon", r.wrap(r.handleCarbon))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/analyses/{id}/failures", r.wrap(r.handleFailures))
		rt.Get("/analyses/{id}/report", r.wrap(r.handleReport))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var ve *analysis.ValidationError
		switch {
		case errors.As(err, &ve):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
		case errors.Is(err, analysis.ErrNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "ai quota exceeded"})
		default:
			zerolog.Ctx(req.Context()).Error().Err(err).Msg("request failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(v)
}

// POST /v1/{tenant}/habitat  (multipart: image, location, habitat_type)
func (r *Router) handleHabitat(w http.ResponseWriter, req *http.Request) error {
	upload, fields, err := readUpload(w, req, "location", "habitat_type")
	if err != nil {
		return err
	}
	rep, err := r.svc.Habitat.Analyze(req.Context(), chi.URLParam(req, "tenant"), habitat.Request{
		Upload:   upload,
		Location: fields["location"],
		Category: fields["habitat_type"],
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rep)
}

// POST /v1/{tenant}/species  (multipart: image, location, notes)
func (r *Router) handleSpecies(w http.ResponseWriter, req *http.Request) error {
	upload, fields, err := readUpload(w, req, "location", "notes")
	if err != nil {
		return err
	}
	rep, err := r.svc.Species.Analyze(req.Context(), chi.URLParam(req, "tenant"), species.Request{
		Upload:   upload,
		Location: fields["location"],
		Notes:    fields["notes"],
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rep)
}

// POST /v1/{tenant}/reforestation  (multipart: image, location, soil_type, climate, area_ha)
func (r *Router) handleReforestation(w http.ResponseWriter, req *http.Request) error {
	upload, fields, err := readUpload(w, req, "location", "soil_type", "climate", "area_ha")
	if err != nil {
		return err
	}
	var area float64
	if s := fields["area_ha"]; s != "" {
		area, err = strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(area) || math.IsInf(area, 0) {
			return &analysis.ValidationError{Field: "area_ha", Message: "Area must be a number of hectares"}
		}
	}
	rep, err := r.svc.Reforestation.Analyze(req.Context(), chi.URLParam(req, "tenant"), reforestation.Request{
		Upload:       upload,
		Location:     fields["location"],
		SoilType:     fields["soil_type"],
		Climate:      fields["climate"],
		AreaHectares: area,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rep)
}

// POST /v1/{tenant}/carbon
// Body: {"activities": {"car_miles_per_week": 120, ...}}
func (r *Router) handleCarbon(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Activities map[string]float64 `json:"activities"`
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxJSONBytes))
	if err := dec.Decode(&body); err != nil {
		return &analysis.ValidationError{Field: "body", Message: "Request body must be JSON with an activities object"}
	}
	rep, err := r.svc.Carbon.Analyze(req.Context(), chi.URLParam(req, "tenant"), carbon.Request{Activities: body.Activities})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rep)
}

// GET /v1/{tenant}/analyses?kind=&page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	kind, err := middleware.ValidateKind(q.Get("kind"))
	if err != nil {
		return err
	}
	page := middleware.ValidatePage(q.Get("page"))
	size := middleware.ValidateLimit(q.Get("page_size"))

	list, err := r.svc.Analyses.List(req.Context(), chi.URLParam(req, "tenant"), kind, page, size)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*analysis.Record{}
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"items":     list,
		"page":      page,
		"page_size": size,
	})
}

// GET /v1/{tenant}/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	rec, err := r.svc.Analyses.Get(req.Context(), chi.URLParam(req, "tenant"), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

// GET /v1/{tenant}/analyses/{id}/failures
func (r *Router) handleFailures(w http.ResponseWriter, req *http.Request) error {
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	tenant := chi.URLParam(req, "tenant")
	if _, err := r.svc.Analyses.Get(req.Context(), tenant, id); err != nil {
		return err
	}
	list, err := r.svc.Analyses.ListFailures(req.Context(), tenant, id)
	if err != nil {
		return err
	}
	if list == nil {
		list = []*analysis.Failure{}
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/{tenant}/analyses/{id}/report
func (r *Router) handleReport(w http.ResponseWriter, req *http.Request) error {
	id, err := analysisID(req)
	if err != nil {
		return err
	}
	doc, err := r.svc.Analyses.Report(req.Context(), chi.URLParam(req, "tenant"), id)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	_, err = io.WriteString(w, doc)
	return err
}

func analysisID(req *http.Request) (analysis.AnalysisID, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return "", err
	}
	return analysis.AnalysisID(id), nil
}

// readUpload parses the multipart form, sniffs the image and returns the
// requested text fields sanitized.
func readUpload(w http.ResponseWriter, req *http.Request, names ...string) (*analysis.Upload, map[string]string, error) {
	req.Body = http.MaxBytesReader(w, req.Body, maxFormBytes)
	if err := req.ParseMultipartForm(maxFormBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, &analysis.ValidationError{Field: "image", Message: "Image must be 10 MB or smaller"}
		}
		return nil, nil, &analysis.ValidationError{Field: "body", Message: "Request must be multipart/form-data"}
	}
	defer req.MultipartForm.RemoveAll()

	fields := make(map[string]string, len(names))
	for _, n := range names {
		v, err := middleware.ValidateText(n, req.FormValue(n))
		if err != nil {
			return nil, nil, err
		}
		fields[n] = v
	}

	f, hdr, err := req.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, analysis.ErrImageRequired
		}
		return nil, nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, middleware.MaxImageBytes+1))
	if err != nil {
		return nil, nil, err
	}
	ct, err := middleware.ValidateUpload(data)
	if err != nil {
		return nil, nil, err
	}
	return &analysis.Upload{
		Filename:    strings.TrimSpace(hdr.Filename),
		ContentType: ct,
		Data:        data,
	}, fields, nil
}
