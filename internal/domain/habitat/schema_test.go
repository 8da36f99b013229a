package habitat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

func TestDecode_FillsDefaults(t *testing.T) {
	// Given a payload with a bogus health status and no lists
	f := analysis.Fields{"habitatType": "Tropical Rainforest", "healthStatus": "Excellent", "confidence": 3.0}

	// When
	res, err := Decode(f)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "Tropical Rainforest", res.HabitatType)
	assert.Equal(t, HealthModerate, res.HealthStatus)
	assert.Equal(t, defaultThreats, res.Threats)
	assert.Len(t, res.Recommendations, 3)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestDecode_MissingConfidence(t *testing.T) {
	res, err := Decode(analysis.Fields{"threats": []any{"Logging"}})
	require.NoError(t, err)
	assert.Equal(t, defaultHabitatType, res.HabitatType)
	assert.Equal(t, []string{"Logging"}, res.Threats)
	assert.Equal(t, 0.7, res.Confidence)
}

func TestDecode_SchemaError(t *testing.T) {
	_, err := Decode(analysis.Fields{"foo": "bar"})
	var se *analysis.SchemaError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, analysis.KindHabitat, se.Kind)
}

func TestParseCategory(t *testing.T) {
	assert.Equal(t, Category(""), ParseCategory("  "))
	assert.Equal(t, Forest, ParseCategory("Forest"))
	assert.Equal(t, Natural, ParseCategory("other"))
}

func TestRequest_Validate(t *testing.T) {
	assert.ErrorIs(t, Request{}.Validate(), analysis.ErrImageRequired)
	assert.NoError(t, Request{Upload: &analysis.Upload{Data: []byte{1}}}.Validate())
}
