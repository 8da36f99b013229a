package reforestation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

func TestDecode(t *testing.T) {
	res, err := Decode(analysis.Fields{"soilHealth": "Fair", "suitableSpecies": []any{}})
	require.NoError(t, err)
	assert.Equal(t, []string{"No species identified"}, res.SuitableSpecies)
	assert.Equal(t, "Fair", res.SoilHealth)
	assert.Equal(t, "Unknown", res.ProjectedGrowthRate)
	assert.Equal(t, []string{"Unknown challenges"}, res.Challenges)
	assert.Equal(t, []string{"Consult with forestry experts"}, res.Recommendations)
	assert.Equal(t, 0.7, res.ConfidenceScore)
}

func TestRequest_Validate(t *testing.T) {
	img := &analysis.Upload{Data: []byte{1}}
	assert.ErrorIs(t, Request{}.Validate(), analysis.ErrImageRequired)
	assert.Error(t, Request{Upload: img, Climate: "martian"}.Validate())
	assert.Error(t, Request{Upload: img, AreaHectares: -1}.Validate())
	assert.NoError(t, Request{Upload: img, Climate: "Tropical", AreaHectares: 100}.Validate())
}
