package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDMS(t *testing.T) {
	tests := []struct {
		in, ref string
		want    float64
		ok      bool
	}{
		{"[52/1 30/1 0/1]", "N", 52.5, true},
		{"[13/1 24/1 1800/100]", "W", -(13 + 24.0/60 + 18.0/3600), true},
		{"[1 2 3]", "", 1 + 2.0/60 + 3.0/3600, true},
		{"[1/0 2/1 3/1]", "N", 0, false},
		{"garbage", "N", 0, false},
		{"", "", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDMS(tt.in, tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestExtractMetadata_NoExif(t *testing.T) {
	meta, err := ExtractMetadata(solidPNG(t, color.RGBA{1, 2, 3, 255}, 4, 4))
	require.NoError(t, err)
	assert.False(t, meta.HasGPS())
	assert.Empty(t, meta.Camera)

	meta, err = ExtractMetadata(nil)
	require.NoError(t, err)
	assert.False(t, meta.HasGPS())
}
