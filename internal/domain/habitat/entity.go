package habitat

import (
	"strings"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Category is the coarse habitat family used to pick fallback records.
type Category string

const (
	Forest       Category = "forest"
	Wetland      Category = "wetland"
	Grassland    Category = "grassland"
	Coastal      Category = "coastal"
	Desert       Category = "desert"
	Freshwater   Category = "freshwater"
	Marine       Category = "marine"
	Mountain     Category = "mountain"
	Urban        Category = "urban"
	Agricultural Category = "agricultural"
	Tundra       Category = "tundra"
	Natural      Category = "natural"
)

// ParseCategory normalises a user supplied category. Empty input stays empty,
// unrecognised values (including "other") map to Natural.
func ParseCategory(s string) Category {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	switch c := Category(s); c {
	case Forest, Wetland, Grassland, Coastal, Desert, Freshwater, Marine,
		Mountain, Urban, Agricultural, Tundra:
		return c
	}
	return Natural
}

// Health status values accepted from a model
const (
	HealthGood     = "Good"
	HealthModerate = "Moderate"
	HealthPoor     = "Poor"
)

var HealthStatuses = []string{HealthGood, HealthModerate, HealthPoor}

type Result struct {
	HabitatType     string   `json:"habitatType"`
	HealthStatus    string   `json:"healthStatus"`
	Threats         []string `json:"threats"`
	Recommendations []string `json:"recommendations"`
	Confidence      float64  `json:"confidence"`
}

func (r Result) Score() float64 { return r.Confidence }

type Request struct {
	Upload   *analysis.Upload
	Location string
	Category string
}

func (r Request) Validate() error {
	if r.Upload.Empty() {
		return analysis.ErrImageRequired
	}
	return nil
}
