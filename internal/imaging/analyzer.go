// Package imaging holds the local image helpers: base64 encoding, the
// pixel-sampling color heuristic and EXIF metadata extraction.
package imaging

import (
	"bytes"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// SampleStride samples every 10th pixel.
const SampleStride = 10

const (
	dominance     = 1.1
	waterFraction = 0.25
	hueFraction   = 0.3
	darkBelow     = 85
	brightAbove   = 170
)

// Analyze estimates brightness and dominant hue families of an encoded image.
// Undecodable input yields analysis.NeutralProfile, never an error.
func Analyze(data []byte) analysis.ImageProfile {
	if len(data) == 0 {
		return analysis.NeutralProfile()
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return analysis.NeutralProfile()
	}
	return AnalyzeImage(img)
}

// AnalyzeImage runs the heuristic on an already decoded image.
func AnalyzeImage(img image.Image) analysis.ImageProfile {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	total := w * h
	if total == 0 {
		return analysis.NeutralProfile()
	}

	var sumR, sumG, sumB int
	var green, blue, brown, samples int
	for i := 0; i < total; i += SampleStride {
		px := color.NRGBAModel.Convert(img.At(b.Min.X+i%w, b.Min.Y+i/w)).(color.NRGBA)
		r, g, bl := float64(px.R), float64(px.G), float64(px.B)

		sumR += int(px.R)
		sumG += int(px.G)
		sumB += int(px.B)
		samples++

		if g > r*dominance && g > bl*dominance {
			green++
		}
		if bl > r*dominance && bl > g*dominance {
			blue++
		}
		if r > g && r > bl && g > bl*dominance {
			brown++
		}
	}

	avgR, avgG, avgB := sumR/samples, sumG/samples, sumB/samples
	brightness := (avgR + avgG + avgB) / 3

	p := analysis.ImageProfile{
		ColorProfile: colorProfile(avgR, avgG, avgB),
		Brightness:   analysis.BrightnessMedium,
		HasWater:     float64(blue)/float64(samples) > waterFraction,
		IsGreen:      float64(green)/float64(samples) > hueFraction,
		IsBlue:       float64(blue)/float64(samples) > hueFraction,
		IsBrown:      float64(brown)/float64(samples) > hueFraction,
	}
	switch {
	case brightness < darkBelow:
		p.Brightness = analysis.BrightnessDark
	case brightness > brightAbove:
		p.Brightness = analysis.BrightnessBright
	}
	return p
}

func colorProfile(r, g, b int) string {
	switch {
	case g > r && g > b:
		return analysis.ColorGreenish
	case b > r && b > g:
		return analysis.ColorBluish
	case r > g && r > b:
		return analysis.ColorReddish
	case r > 150 && g > 150 && b > 150:
		return analysis.ColorBright
	case r < 100 && g < 100 && b < 100:
		return analysis.ColorDark
	}
	return analysis.ColorNeutral
}
