package carbon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/application/pipeline"
	"github.com/bryanwahyu/ecosense/internal/domain/ai"
	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	domain "github.com/bryanwahyu/ecosense/internal/domain/carbon"
	"github.com/bryanwahyu/ecosense/internal/fallback"
)

type stubClient struct {
	text  string
	err   error
	calls []ai.GenerateRequest
}

func (s *stubClient) Generate(_ context.Context, req ai.GenerateRequest) (string, error) {
	s.calls = append(s.calls, req)
	return s.text, s.err
}

func newService(primary ai.Client) *Service {
	return NewService(&pipeline.Runner{Primary: primary}, fallback.NewCarbon())
}

func TestService_Analyze_AllZeroNeverCallsRemote(t *testing.T) {
	// Given every activity at zero
	primary := &stubClient{}
	svc := newService(primary)

	// When
	rep, err := svc.Analyze(context.Background(), "acme", domain.Request{Activities: map[string]float64{
		domain.CarMiles: 0, domain.Flights: 0,
	}})

	// Then
	assert.Nil(t, rep)
	assert.ErrorIs(t, err, analysis.ErrNoActivity)
	assert.Equal(t, "Please enter at least one non-zero activity value", err.Error())
	assert.Empty(t, primary.calls)
}

func TestService_Analyze_TextOnlyRemote(t *testing.T) {
	primary := &stubClient{text: `{"totalEmissions":6200,"breakdownByCategory":{"transportation":4100,"energy":"lots"},"comparisonToAverage":55}`}
	svc := newService(primary)

	rep, err := svc.Analyze(context.Background(), "acme", domain.Request{Activities: map[string]float64{domain.CarMiles: 150}})

	require.NoError(t, err)
	assert.Equal(t, analysis.SourceRemote, rep.Source)
	assert.Equal(t, 6200.0, rep.Result.TotalEmissions)
	assert.Equal(t, map[string]float64{"transportation": 4100}, rep.Result.BreakdownByCategory)
	require.Len(t, primary.calls, 1)
	assert.Nil(t, primary.calls[0].Image)
	assert.Contains(t, primary.calls[0].Prompt, `{"car_miles_per_week":150}`)
}

func TestService_Analyze_Fallback(t *testing.T) {
	svc := newService(&stubClient{err: &ai.NotConfiguredError{Provider: "gemini"}})

	rep, err := svc.Analyze(context.Background(), "acme", domain.Request{Activities: map[string]float64{domain.Flights: 4}})

	require.NoError(t, err)
	assert.Equal(t, analysis.SourceFallback, rep.Source)
	assert.Equal(t, 1020.0, rep.Result.TotalEmissions)
	assert.Equal(t, 0.6, rep.Result.Confidence)
}
