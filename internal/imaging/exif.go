package imaging

import (
	"errors"
	"strconv"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// ExtractMetadata reads camera, capture time and GPS position from EXIF data.
// Images without EXIF return empty metadata and no error.
func ExtractMetadata(data []byte) (analysis.ImageMetadata, error) {
	var meta analysis.ImageMetadata
	if len(data) == 0 {
		return meta, nil
	}

	raw, err := exif.SearchAndExtractExif(data)
	if err != nil {
		if errors.Is(err, exif.ErrNoExif) {
			return meta, nil
		}
		return meta, err
	}

	entries, _, err := exif.GetFlatExifData(raw, nil)
	if err != nil {
		return meta, err
	}

	var camMake, model, lat, latRef, lon, lonRef, dateTime string
	for _, e := range entries {
		switch e.TagName {
		case "Make":
			camMake = strings.TrimSpace(e.Formatted)
		case "Model":
			model = strings.TrimSpace(e.Formatted)
		case "DateTimeOriginal":
			meta.TakenAt = e.Formatted
		case "DateTime":
			dateTime = e.Formatted
		case "GPSLatitude":
			lat = e.Formatted
		case "GPSLatitudeRef":
			latRef = e.Formatted
		case "GPSLongitude":
			lon = e.Formatted
		case "GPSLongitudeRef":
			lonRef = e.Formatted
		}
	}

	meta.Camera = strings.TrimSpace(camMake + " " + model)
	if meta.TakenAt == "" {
		meta.TakenAt = dateTime
	}
	if v, ok := ParseDMS(lat, latRef); ok {
		if w, ok := ParseDMS(lon, lonRef); ok {
			meta.Latitude, meta.Longitude = &v, &w
		}
	}
	return meta, nil
}

// ParseDMS converts a formatted EXIF rational triple such as
// "[52/1 31/1 1234/100]" plus its N/S/E/W reference into decimal degrees.
func ParseDMS(formatted, ref string) (float64, bool) {
	fields := strings.Fields(strings.Trim(strings.TrimSpace(formatted), "[]"))
	if len(fields) != 3 {
		return 0, false
	}
	var parts [3]float64
	for i, f := range fields {
		num, den, found := strings.Cut(f, "/")
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, false
		}
		d := 1.0
		if found {
			if d, err = strconv.ParseFloat(den, 64); err != nil || d == 0 {
				return 0, false
			}
		}
		parts[i] = n / d
	}
	deg := parts[0] + parts[1]/60 + parts[2]/3600
	switch strings.ToUpper(strings.TrimSpace(ref)) {
	case "S", "W":
		deg = -deg
	}
	return deg, true
}
