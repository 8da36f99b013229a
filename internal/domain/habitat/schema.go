package habitat

import "github.com/bryanwahyu/ecosense/internal/domain/analysis"

var (
	defaultThreats = []string{"Unable to identify specific threats without additional data"}

	defaultRecommendations = []string{
		"Conduct a detailed on-site ecological survey",
		"Monitor biodiversity indicators over time",
		"Consult with local ecological experts for habitat-specific assessment",
	}
)

const (
	defaultHabitatType = "Unknown Habitat Type"
	defaultConfidence  = 0.7
)

// Decode turns a model payload into a valid Result, or a *analysis.SchemaError
// when the payload carries none of the habitat fields.
func Decode(f analysis.Fields) (Result, error) {
	if !f.Has("habitatType", "healthStatus", "threats", "recommendations", "confidence") {
		return Result{}, &analysis.SchemaError{Kind: analysis.KindHabitat, Reason: "no habitat fields present"}
	}
	return Result{
		HabitatType:     f.String("habitatType", defaultHabitatType),
		HealthStatus:    f.OneOf("healthStatus", HealthStatuses, HealthModerate),
		Threats:         f.Strings("threats", defaultThreats),
		Recommendations: f.Strings("recommendations", defaultRecommendations),
		Confidence:      f.Confidence("confidence", defaultConfidence),
	}, nil
}
