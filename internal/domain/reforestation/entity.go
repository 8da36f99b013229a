package reforestation

import (
	"fmt"
	"math"
	"strings"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Climate zones offered by the planner
type Climate string

const (
	Tropical    Climate = "tropical"
	Dry         Climate = "dry"
	Temperate   Climate = "temperate"
	Continental Climate = "continental"
	Polar       Climate = "polar"
)

func ParseClimate(s string) (Climate, bool) {
	switch c := Climate(strings.ToLower(strings.TrimSpace(s))); c {
	case Tropical, Dry, Temperate, Continental, Polar:
		return c, true
	}
	return "", false
}

type Result struct {
	SuitableSpecies     []string `json:"suitableSpecies"`
	SoilHealth          string   `json:"soilHealth"`
	ProjectedGrowthRate string   `json:"projectedGrowthRate"`
	Challenges          []string `json:"challenges"`
	Recommendations     []string `json:"recommendations"`
	ConfidenceScore     float64  `json:"confidenceScore"`
}

func (r Result) Score() float64 { return r.ConfidenceScore }

type Request struct {
	Upload       *analysis.Upload
	Location     string
	SoilType     string
	Climate      string
	AreaHectares float64
}

func (r Request) Validate() error {
	if r.Upload.Empty() {
		return analysis.ErrImageRequired
	}
	if math.IsNaN(r.AreaHectares) || math.IsInf(r.AreaHectares, 0) {
		return &analysis.ValidationError{Field: "area_ha", Message: "Area size must be a finite number"}
	}
	if r.AreaHectares < 0 {
		return &analysis.ValidationError{Field: "area_ha", Message: "Area size must not be negative"}
	}
	if r.Climate != "" {
		if _, ok := ParseClimate(r.Climate); !ok {
			return &analysis.ValidationError{Field: "climate", Message: fmt.Sprintf("Unknown climate type %q", r.Climate)}
		}
	}
	return nil
}
