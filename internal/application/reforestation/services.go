package reforestation

import (
	"context"
	"strconv"

	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	domain "github.com/bryanwahyu/ecosense/internal/domain/reforestation"
	"github.com/bryanwahyu/ecosense/internal/fallback"
	"github.com/bryanwahyu/ecosense/internal/infra/ai/prompt"
)

type Service struct {
	Runner   *pipeline.Runner
	Fallback *fallback.Reforestation
}

func NewService(r *pipeline.Runner, fb *fallback.Reforestation) *Service {
	return &Service{Runner: r, Fallback: fb}
}

func (s *Service) Analyze(ctx context.Context, tenant string, req domain.Request) (*pipeline.Report[domain.Result], error) {
	return pipeline.Run(ctx, s.Runner, pipeline.Job[domain.Result]{
		Kind:     analysis.KindReforestation,
		TenantID: tenant,
		Upload:   req.Upload,
		Location: req.Location,
		Validate: req.Validate,
		BuildPrompt: func(location string) (string, error) {
			return prompt.Reforestation(prompt.Site{
				Location:     location,
				SoilType:     req.SoilType,
				Climate:      req.Climate,
				AreaHectares: req.AreaHectares,
			}), nil
		},
		Decode: domain.Decode,
		Fallback: func(in pipeline.FallbackInput) (domain.Result, error) {
			site := req
			site.Location = in.Location
			return s.Fallback.Generate(in.Profile, site), nil
		},
		CacheKey: req.Location + "\x00" + req.SoilType + "\x00" + req.Climate + "\x00" +
			strconv.FormatFloat(req.AreaHectares, 'f', -1, 64),
	})
}
