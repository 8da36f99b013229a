package species

import (
	"context"

	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	domain "github.com/bryanwahyu/ecosense/internal/domain/species"
	"github.com/bryanwahyu/ecosense/internal/fallback"
	"github.com/bryanwahyu/ecosense/internal/infra/ai/prompt"
)

type Service struct {
	Runner   *pipeline.Runner
	Fallback *fallback.Species
}

func NewService(r *pipeline.Runner, fb *fallback.Species) *Service {
	return &Service{Runner: r, Fallback: fb}
}

func (s *Service) Analyze(ctx context.Context, tenant string, req domain.Request) (*pipeline.Report[domain.Result], error) {
	return pipeline.Run(ctx, s.Runner, pipeline.Job[domain.Result]{
		Kind:     analysis.KindSpecies,
		TenantID: tenant,
		Upload:   req.Upload,
		Location: req.Location,
		Validate: req.Validate,
		BuildPrompt: func(location string) (string, error) {
			return prompt.Species(location, req.Notes), nil
		},
		Decode: domain.Decode,
		Fallback: func(in pipeline.FallbackInput) (domain.Result, error) {
			return s.Fallback.Generate(in.Filename, in.Location, req.Notes), nil
		},
		UseAlternate: true,
		CacheKey:     req.Location + "\x00" + req.Notes,
	})
}
