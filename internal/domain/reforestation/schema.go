package reforestation

import "github.com/bryanwahyu/ecosense/internal/domain/analysis"

func Decode(f analysis.Fields) (Result, error) {
	if !f.Has("suitableSpecies", "soilHealth", "projectedGrowthRate", "challenges", "recommendations", "confidenceScore") {
		return Result{}, &analysis.SchemaError{Kind: analysis.KindReforestation, Reason: "no reforestation fields present"}
	}
	return Result{
		SuitableSpecies:     f.Strings("suitableSpecies", []string{"No species identified"}),
		SoilHealth:          f.String("soilHealth", "Unknown"),
		ProjectedGrowthRate: f.String("projectedGrowthRate", "Unknown"),
		Challenges:          f.Strings("challenges", []string{"Unknown challenges"}),
		Recommendations:     f.Strings("recommendations", []string{"Consult with forestry experts"}),
		ConfidenceScore:     f.Confidence("confidenceScore", 0.7),
	}, nil
}
