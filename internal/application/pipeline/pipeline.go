// Package pipeline runs one analysis through the remote endpoint, the
// alternate endpoint and the local generator, in that order, and records the
// outcome. It keeps no state between runs.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/ecosense/internal/application"
	"github.com/bryanwahyu/ecosense/internal/domain/ai"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/imaging"
	"github.com/bryanwahyu/ecosense/internal/infra/ai/prompt"
)

// Runner carries the collaborators shared by all services. Only Primary is
// required.
type Runner struct {
	Primary   ai.Client
	Alternate ai.Client
	Images    analysis.ImageStore
	Repo      analysis.Repository
	Failures  analysis.FailureRepository
	Cache     Cache
	Metrics   Recorder
	Analyzer  func([]byte) analysis.ImageProfile
	Metadata  func([]byte) (analysis.ImageMetadata, error)
	Clock     application.Clock
}

// FallbackInput is what the local generator gets to work with.
type FallbackInput struct {
	Profile  analysis.ImageProfile
	Filename string
	Location string
}

// Job describes one analysis request.
type Job[T Result] struct {
	Kind     analysis.Kind
	TenantID string
	Upload   *analysis.Upload // nil for text-only analyses
	Location string

	Validate    func() error
	Params      ai.GenerateRequest
	BuildPrompt func(location string) (string, error)
	Decode      func(analysis.Fields) (T, error)
	Fallback    func(FallbackInput) (T, error)

	// UseAlternate tries Runner.Alternate before the local generator
	UseAlternate bool
	// CacheKey is mixed into the cache fingerprint, usually the request context
	CacheKey string
}

type prepared struct {
	image    *ai.Image
	profile  *analysis.ImageProfile
	metadata *analysis.ImageMetadata
	imageURL string
}

// Run executes job. The only errors returned are validation errors, encoding
// errors and a failing fallback; every remote problem ends in a fallback
// result instead.
func Run[T Result](ctx context.Context, r *Runner, job Job[T]) (*Report[T], error) {
	log := zerolog.Ctx(ctx).With().Str("kind", string(job.Kind)).Logger()
	start := r.now()

	rep := &Report[T]{
		ID:        analysis.AnalysisID(uuid.NewString()),
		Kind:      job.Kind,
		CreatedAt: start,
	}
	enter := func(s analysis.State) {
		rep.States = append(rep.States, s)
		log.Debug().Str("analysis_id", string(rep.ID)).Str("state", string(s)).Msg("analysis state")
	}
	enter(analysis.StateIdle)

	if job.Validate != nil {
		if err := job.Validate(); err != nil {
			return nil, err
		}
	}

	var key string
	if r.Cache != nil {
		key = cacheKey(job)
		if v, ok := r.Cache.Get(key); ok {
			if hit, ok := v.(*Report[T]); ok {
				log.Debug().Str("analysis_id", string(hit.ID)).Msg("cache hit")
				c := hit.clone()
				c.Cached = true
				return c, nil
			}
		}
	}

	enter(analysis.StateEncoding)
	prep, err := r.prepare(ctx, job.Kind, job.TenantID, job.Upload, rep.ID)
	if err != nil {
		return nil, err
	}
	rep.ImageURL, rep.Profile, rep.Metadata = prep.imageURL, prep.profile, prep.metadata

	location := strings.TrimSpace(job.Location)
	if location == "" && prep.metadata != nil {
		location = prep.metadata.LocationHint()
	}
	rep.Location = location

	params := job.Params
	params.Image = prep.image
	params.Prompt, err = job.BuildPrompt(location)
	if err != nil {
		return nil, fmt.Errorf("build prompt: %w", err)
	}

	enter(analysis.StateRemoteCall)
	out := attempt(ctx, r.Primary, params, job.Decode)
	if v, ok := out.Get(); ok {
		enter(analysis.StateParsed)
		enter(analysis.StateValidated)
		rep.Result, rep.Source = v, analysis.SourceRemote
	} else {
		enter(analysis.StateRemoteFailed)
		reason := out.Reason()
		log.Warn().Err(reason).Str("analysis_id", string(rep.ID)).Msg("remote analysis failed")
		r.saveFailure(ctx, job.TenantID, job.Kind, rep.ID, analysis.PhaseRemote, reason)

		done := false
		if job.UseAlternate && r.Alternate != nil {
			enter(analysis.StateRemoteCall)
			alt := attempt(ctx, r.Alternate, params, job.Decode)
			if v, ok := alt.Get(); ok {
				enter(analysis.StateParsed)
				enter(analysis.StateValidated)
				rep.Result, rep.Source = v, analysis.SourceAlternate
				done = true
			} else {
				enter(analysis.StateRemoteFailed)
				log.Warn().Err(alt.Reason()).Str("analysis_id", string(rep.ID)).Msg("alternate analysis failed")
				r.saveFailure(ctx, job.TenantID, job.Kind, rep.ID, analysis.PhaseAlternate, alt.Reason())
			}
		}
		rep.FailureReason = reason.Error()

		if !done {
			enter(analysis.StateFallback)
			in := FallbackInput{Profile: analysis.NeutralProfile(), Filename: job.Upload.Name(), Location: location}
			if prep.profile != nil {
				in.Profile = *prep.profile
			}
			v, err := job.Fallback(in)
			if err != nil {
				return nil, err
			}
			rep.Result, rep.Source = v, analysis.SourceFallback
		}
	}
	enter(analysis.StateDone)

	persist(ctx, r, job.TenantID, job.Upload, rep)
	if r.Cache != nil {
		r.Cache.Set(key, rep.clone())
	}
	if r.Metrics != nil {
		r.Metrics.AnalysisCompleted(job.Kind, rep.Source, r.now().Sub(start))
	}
	log.Info().
		Str("analysis_id", string(rep.ID)).
		Str("source", string(rep.Source)).
		Float64("confidence", rep.Result.Score()).
		Msg("analysis finished")
	return rep, nil
}

// attempt makes one remote call and turns every failure into an Outcome.
func attempt[T Result](ctx context.Context, c ai.Client, req ai.GenerateRequest, decode func(analysis.Fields) (T, error)) ai.Outcome[T] {
	if c == nil {
		return ai.Failure[T](&ai.NotConfiguredError{Provider: "remote"})
	}
	text, err := c.Generate(ctx, req)
	if err != nil {
		return ai.Failure[T](err)
	}
	fields, err := prompt.ExtractStructured(text)
	if err != nil {
		return ai.Failure[T](err)
	}
	v, err := decode(fields)
	if err != nil {
		return ai.Failure[T](err)
	}
	return ai.Success(v)
}

// prepare encodes the image and, in parallel, profiles it, reads EXIF and
// uploads it. Only the encoding error is fatal.
func (r *Runner) prepare(ctx context.Context, kind analysis.Kind, tenant string, u *analysis.Upload, id analysis.AnalysisID) (prepared, error) {
	var p prepared
	if u.Empty() {
		return p, nil
	}
	log := zerolog.Ctx(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		encoded, err := imaging.Encode(u)
		if err != nil {
			return fmt.Errorf("encode image: %w", err)
		}
		p.image = &ai.Image{MIMEType: u.MIMEType(), Data: u.Data, Encoded: encoded}
		return nil
	})
	g.Go(func() error {
		analyze := r.Analyzer
		if analyze == nil {
			analyze = imaging.Analyze
		}
		profile := analyze(u.Data)
		p.profile = &profile
		return nil
	})
	if r.Metadata != nil {
		g.Go(func() error {
			md, err := r.Metadata(u.Data)
			if err != nil {
				log.Debug().Err(err).Msg("no usable image metadata")
				return nil
			}
			p.metadata = &md
			return nil
		})
	}
	if r.Images != nil {
		g.Go(func() error {
			url, err := r.Images.Upload(gctx, objectKey(tenant, kind, id, u.Filename), u)
			if err != nil {
				// analysis still goes ahead without a stored copy
				log.Warn().Err(err).Str("analysis_id", string(id)).Msg("image upload failed")
				r.saveFailure(ctx, tenant, kind, id, analysis.PhaseStore, err)
				return nil
			}
			p.imageURL = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return prepared{}, err
	}
	return p, nil
}

func objectKey(tenant string, kind analysis.Kind, id analysis.AnalysisID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/%s/%s%s", tenant, kind, id, ext)
}

func (r *Runner) saveFailure(ctx context.Context, tenant string, kind analysis.Kind, id analysis.AnalysisID, phase analysis.Phase, cause error) {
	if r.Metrics != nil {
		r.Metrics.FailureRecorded(kind, phase)
	}
	if r.Failures == nil {
		return
	}
	f := &analysis.Failure{
		TenantID:    tenant,
		AnalysisID:  string(id),
		Kind:        kind,
		Phase:       phase,
		Message:     cause.Error(),
		DetailsJSON: failureDetails(cause),
		CreatedAt:   r.now(),
	}
	if err := r.Failures.Save(ctx, f); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("analysis_id", string(id)).Msg("failed to save failure record")
	}
}

// failureDetails classifies cause into a small JSON document.
func failureDetails(cause error) string {
	d := map[string]any{"error": cause.Error()}
	var se *ai.StatusError
	var nc *ai.NotConfiguredError
	switch {
	case errors.As(cause, &se):
		d["type"] = "status"
		d["status_code"] = se.Code
		d["status_kind"] = se.Kind
	case errors.As(cause, &nc):
		d["type"] = "not-configured"
		d["provider"] = nc.Provider
	case errors.Is(cause, ai.ErrTimeout):
		d["type"] = "timeout"
	case errors.Is(cause, prompt.ErrNoJSON), errors.Is(cause, prompt.ErrParse):
		d["type"] = "parse"
	default:
		var schema *analysis.SchemaError
		if errors.As(cause, &schema) {
			d["type"] = "schema"
		} else {
			d["type"] = "transport"
		}
	}
	b, _ := json.Marshal(d)
	return string(b)
}

// persist stores the report. Storage problems are logged, the caller still
// gets its result.
func persist[T Result](ctx context.Context, r *Runner, tenant string, u *analysis.Upload, rep *Report[T]) {
	if r.Repo == nil {
		return
	}
	body, err := json.Marshal(rep.Result)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to marshal analysis result")
		return
	}
	rec := &analysis.Record{
		ID:            rep.ID,
		TenantID:      tenant,
		Kind:          rep.Kind,
		Source:        rep.Source,
		ImageURL:      rep.ImageURL,
		Location:      rep.Location,
		Result:        string(body),
		Confidence:    rep.Result.Score(),
		FailureReason: rep.FailureReason,
		CreatedAt:     rep.CreatedAt,
	}
	if u != nil {
		rec.Filename = u.Filename
	}
	if err := r.Repo.Save(ctx, rec); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("analysis_id", string(rep.ID)).Msg("failed to save analysis")
	}
}

func (r *Runner) now() time.Time {
	if r.Clock == nil {
		return time.Now()
	}
	return r.Clock.Now()
}
