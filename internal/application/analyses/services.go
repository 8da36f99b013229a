package analyses

import (
	"context"
	"fmt"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Renderer turns a stored analysis into a human readable document.
type Renderer interface {
	Render(rec *analysis.Record, failures []*analysis.Failure) (string, error)
}

// Service is the read side over persisted analyses
type Service struct {
	Repo     analysis.Repository
	Failures analysis.FailureRepository
	Renderer Renderer
}

// FailureLimit caps the failures attached to a report
const FailureLimit = 20

func (s *Service) List(ctx context.Context, tenant string, kind analysis.Kind, page, pageSize int) ([]*analysis.Record, error) {
	if kind != "" && !kind.Valid() {
		return nil, &analysis.ValidationError{Field: "kind", Message: fmt.Sprintf("Unknown analysis kind %q", kind)}
	}
	return s.Repo.Paginate(ctx, tenant, kind, page, pageSize)
}

func (s *Service) Get(ctx context.Context, tenant string, id analysis.AnalysisID) (*analysis.Record, error) {
	rec, err := s.Repo.Get(ctx, tenant, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, analysis.ErrNotFound
	}
	return rec, nil
}

// ListFailures returns the recorded remote failures of one analysis.
func (s *Service) ListFailures(ctx context.Context, tenant string, id analysis.AnalysisID) ([]*analysis.Failure, error) {
	if s.Failures == nil {
		return nil, nil
	}
	return s.Failures.ListByAnalysis(ctx, tenant, string(id), FailureLimit)
}

// Report renders one analysis together with its failures.
func (s *Service) Report(ctx context.Context, tenant string, id analysis.AnalysisID) (string, error) {
	rec, err := s.Get(ctx, tenant, id)
	if err != nil {
		return "", err
	}
	failures, err := s.ListFailures(ctx, tenant, id)
	if err != nil {
		return "", fmt.Errorf("list failures: %w", err)
	}
	return s.Renderer.Render(rec, failures)
}
