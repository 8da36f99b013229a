package carbon

import (
	"context"

	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	domain "github.com/bryanwahyu/ecosense/internal/domain/carbon"
	"github.com/bryanwahyu/ecosense/internal/fallback"
	"github.com/bryanwahyu/ecosense/internal/infra/ai/prompt"
)

// Service estimates a footprint from activity values. There is no image, so
// the remote call is text only.
type Service struct {
	Runner   *pipeline.Runner
	Fallback *fallback.Carbon
}

func NewService(r *pipeline.Runner, fb *fallback.Carbon) *Service {
	return &Service{Runner: r, Fallback: fb}
}

func (s *Service) Analyze(ctx context.Context, tenant string, req domain.Request) (*pipeline.Report[domain.Result], error) {
	// validasi dulu, NaN tidak bisa di-marshal ke JSON
	if err := req.Validate(); err != nil {
		return nil, err
	}
	// prompt juga dipakai sebagai cache key, aman karena key map di-marshal terurut
	text, err := prompt.Carbon(req.Activities)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx, s.Runner, pipeline.Job[domain.Result]{
		Kind:        analysis.KindCarbon,
		TenantID:    tenant,
		BuildPrompt: func(string) (string, error) { return text, nil },
		Decode:      domain.Decode,
		Fallback: func(pipeline.FallbackInput) (domain.Result, error) {
			return s.Fallback.Generate(req)
		},
		CacheKey: text,
	})
}
