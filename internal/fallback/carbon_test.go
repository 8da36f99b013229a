package fallback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/domain/carbon"
)

func TestCarbon_Generate_RejectsAllZero(t *testing.T) {
	_, err := NewCarbon().Generate(carbon.Request{Activities: map[string]float64{
		carbon.CarMiles: 0, carbon.Electricity: 0,
	}})
	assert.True(t, errors.Is(err, analysis.ErrNoActivity))
}

func TestCarbon_Generate_RejectsUnknownActivity(t *testing.T) {
	_, err := NewCarbon().Generate(carbon.Request{Activities: map[string]float64{"bike_km": 50}})

	var ve *analysis.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "bike_km", ve.Field)
}

func TestCarbon_Generate_SingleActivity(t *testing.T) {
	// Given 100 car miles a week
	req := carbon.Request{Activities: map[string]float64{carbon.CarMiles: 100}}

	// When
	res, err := NewCarbon().Generate(req)

	// Then
	require.NoError(t, err)
	assert.InDelta(t, 2100.8, res.TotalEmissions, 1e-9)
	assert.InDelta(t, 2100.8, res.BreakdownByCategory["transportation"], 1e-9)
	assert.InDelta(t, -47.5, res.ComparisonToAverage, 1e-9)
	assert.Equal(t, 0.6, res.Confidence)
	require.Len(t, res.Recommendations, 2)
	assert.Contains(t, res.Recommendations[0], "short car trips")
}

func TestCarbon_Generate_RecommendsLargestCategoriesFirst(t *testing.T) {
	req := carbon.Request{Activities: map[string]float64{
		carbon.Electricity:   500, // 2340
		carbon.MeatServings:  7,   // 910
		carbon.DairyServings: 0,
	}}

	res, err := NewCarbon().Generate(req)

	require.NoError(t, err)
	assert.InDelta(t, 3250, res.TotalEmissions, 1e-9)
	require.Len(t, res.Recommendations, 4)
	assert.Equal(t, carbonTips[carbon.Energy][0], res.Recommendations[0])
	assert.Equal(t, carbonTips[carbon.Food][0], res.Recommendations[2])
}

func TestCarbon_Generate_OffsetsNeverGoNegative(t *testing.T) {
	req := carbon.Request{Activities: map[string]float64{
		carbon.RecyclingRate: 100,
		carbon.Composting:    10,
	}}

	res, err := NewCarbon().Generate(req)

	require.NoError(t, err)
	assert.Equal(t, 0.0, res.BreakdownByCategory["waste"])
	assert.Equal(t, 0.0, res.TotalEmissions)
	assert.Equal(t, -100.0, res.ComparisonToAverage)
	assert.Equal(t, []string{"Keep tracking your activities to find reduction opportunities"}, res.Recommendations)
}
