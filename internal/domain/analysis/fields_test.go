package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFields_Defaults(t *testing.T) {
	f := Fields{
		"name":    "  Bald Eagle ",
		"blank":   "   ",
		"number":  "0.9",
		"list":    []any{"a", 3, "", "b"},
		"empty":   []any{},
		"score":   1.7,
		"nested":  map[string]any{"energy": 12.5, "food": "lots"},
		"status":  "Poor",
		"unknown": "Excellent",
	}

	assert.Equal(t, "Bald Eagle", f.String("name", "x"))
	assert.Equal(t, "x", f.String("blank", "x"))
	assert.Equal(t, "x", f.String("missing", "x"))
	assert.Equal(t, 0.5, f.Number("number", 0.5), "strings are not numbers")
	assert.Equal(t, []string{"a", "b"}, f.Strings("list", []string{"d"}))
	assert.Equal(t, []string{"d"}, f.Strings("empty", []string{"d"}))
	assert.Equal(t, 1.0, f.Confidence("score", 0.7))
	assert.Equal(t, map[string]float64{"energy": 12.5}, f.NumberMap("nested"))
	assert.Empty(t, f.NumberMap("missing"))

	allowed := []string{"Good", "Moderate", "Poor"}
	assert.Equal(t, "Poor", f.OneOf("status", allowed, "Moderate"))
	assert.Equal(t, "Moderate", f.OneOf("unknown", allowed, "Moderate"))
}

func TestFields_StringsDefaultIsCopied(t *testing.T) {
	def := []string{"one"}
	got := Fields{}.Strings("x", def)
	got[0] = "changed"
	assert.Equal(t, "one", def[0])
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.2))
	assert.Equal(t, 1.0, Clamp01(1.01))
	assert.Equal(t, 0.42, Clamp01(0.42))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestImageMetadata_LocationHint(t *testing.T) {
	lat, lon := 52.52, -13.405
	assert.Equal(t, "", ImageMetadata{}.LocationHint())
	assert.Equal(t, "GPS 52.5200, -13.4050", ImageMetadata{Latitude: &lat, Longitude: &lon}.LocationHint())
}

func TestUpload_MIMEType(t *testing.T) {
	var nilUpload *Upload
	assert.True(t, nilUpload.Empty())
	assert.Equal(t, DefaultImageMIME, nilUpload.MIMEType())
	assert.Equal(t, DefaultImageMIME, (&Upload{ContentType: "application/octet-stream"}).MIMEType())
	assert.Equal(t, "image/png", (&Upload{ContentType: "image/png"}).MIMEType())
	assert.Equal(t, "forest_01.jpg", (&Upload{Filename: "Forest_01.JPG"}).Name())
}
