package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bryanwahyu/ecosense/internal/domain/ai"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

type mockClient struct{ mock.Mock }

func (m *mockClient) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Save(ctx context.Context, r *analysis.Record) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRepo) Get(ctx context.Context, tenant string, id analysis.AnalysisID) (*analysis.Record, error) {
	args := m.Called(ctx, tenant, id)
	rec, _ := args.Get(0).(*analysis.Record)
	return rec, args.Error(1)
}

func (m *mockRepo) Paginate(ctx context.Context, tenant string, kind analysis.Kind, page, pageSize int) ([]*analysis.Record, error) {
	args := m.Called(ctx, tenant, kind, page, pageSize)
	recs, _ := args.Get(0).([]*analysis.Record)
	return recs, args.Error(1)
}

type mockFailures struct{ mock.Mock }

func (m *mockFailures) Save(ctx context.Context, f *analysis.Failure) error {
	return m.Called(ctx, f).Error(0)
}

func (m *mockFailures) ListByAnalysis(ctx context.Context, tenant, analysisID string, limit int) ([]*analysis.Failure, error) {
	args := m.Called(ctx, tenant, analysisID, limit)
	out, _ := args.Get(0).([]*analysis.Failure)
	return out, args.Error(1)
}

type mockStore struct{ mock.Mock }

func (m *mockStore) Upload(ctx context.Context, key string, u *analysis.Upload) (string, error) {
	args := m.Called(ctx, key, u)
	return args.String(0), args.Error(1)
}

// mapCache is a minimal in-memory Cache
type mapCache struct {
	mu sync.Mutex
	m  map[string]any
}

func (c *mapCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = map[string]any{}
	}
	c.m[key] = v
}

type countingRecorder struct {
	mu        sync.Mutex
	completed []analysis.Source
	failures  []analysis.Phase
}

func (r *countingRecorder) AnalysisCompleted(_ analysis.Kind, source analysis.Source, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = append(r.completed, source)
}

func (r *countingRecorder) FailureRecorded(_ analysis.Kind, phase analysis.Phase) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, phase)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
