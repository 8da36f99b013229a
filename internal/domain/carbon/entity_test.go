package carbon

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

func TestRequest_Validate(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]float64
		field string
	}{
		{"nil map", nil, "activities"},
		{"all zero", map[string]float64{CarMiles: 0, Flights: 0}, "activities"},
		{"negative", map[string]float64{CarMiles: -3}, CarMiles},
		{"nan", map[string]float64{Flights: math.NaN()}, Flights},
		{"unknown key only", map[string]float64{"bike_km": 50}, "bike_km"},
		{"unknown key next to a known one", map[string]float64{CarMiles: 10, "bike_km": 50}, "bike_km"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Request{Activities: tt.input}.Validate()
			var ve *analysis.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	assert.NoError(t, Request{Activities: map[string]float64{CarMiles: 0, Electricity: 300}}.Validate())
}

func TestRequest_Keys(t *testing.T) {
	r := Request{Activities: map[string]float64{Flights: 1, CarMiles: 2}}
	assert.Equal(t, []string{CarMiles, Flights}, r.Keys())
}

func TestLookup(t *testing.T) {
	a, ok := Lookup(NaturalGas)
	require.True(t, ok)
	assert.Equal(t, Energy, a.Category)

	_, ok = Lookup("horse_rides")
	assert.False(t, ok)
}

func TestDecode(t *testing.T) {
	res, err := Decode(analysis.Fields{
		"totalEmissions":      5400.5,
		"breakdownByCategory": map[string]any{"transportation": 3000.0},
	})
	require.NoError(t, err)
	assert.Equal(t, 5400.5, res.TotalEmissions)
	assert.Equal(t, map[string]float64{"transportation": 3000}, res.BreakdownByCategory)
	assert.Equal(t, []string{"No recommendations available"}, res.Recommendations)
	assert.Equal(t, 0.7, res.Confidence)
}
