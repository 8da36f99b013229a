package habitat

import (
	"context"

	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	"github.com/bryanwahyu/ecosense/internal/domain/ai"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	domain "github.com/bryanwahyu/ecosense/internal/domain/habitat"
	"github.com/bryanwahyu/ecosense/internal/fallback"
	"github.com/bryanwahyu/ecosense/internal/infra/ai/prompt"
)

// Service implements habitat assessment use-case
type Service struct {
	Runner   *pipeline.Runner
	Fallback *fallback.Habitat
}

func NewService(r *pipeline.Runner, fb *fallback.Habitat) *Service {
	return &Service{Runner: r, Fallback: fb}
}

// Analyze jalankan assessment habitat: remote dulu, lalu alternate, lalu fallback lokal
func (s *Service) Analyze(ctx context.Context, tenant string, req domain.Request) (*pipeline.Report[domain.Result], error) {
	category := domain.ParseCategory(req.Category)

	return pipeline.Run(ctx, s.Runner, pipeline.Job[domain.Result]{
		Kind:     analysis.KindHabitat,
		TenantID: tenant,
		Upload:   req.Upload,
		Location: req.Location,
		Validate: req.Validate,
		Params: ai.GenerateRequest{
			Temperature: prompt.HabitatTemperature,
			MaxTokens:   prompt.HabitatMaxTokens,
		},
		BuildPrompt: func(location string) (string, error) {
			return prompt.Habitat(location, req.Category), nil
		},
		Decode: domain.Decode,
		Fallback: func(in pipeline.FallbackInput) (domain.Result, error) {
			return s.Fallback.Generate(in.Profile, in.Filename, in.Location, category), nil
		},
		UseAlternate: true,
		CacheKey:     req.Location + "\x00" + string(category),
	})
}
