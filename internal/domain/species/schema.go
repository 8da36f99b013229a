package species

import "github.com/bryanwahyu/ecosense/internal/domain/analysis"

var knownFields = []string{
	"speciesName", "scientificName", "conservationStatus", "population",
	"habitat", "threats", "recommendations", "confidence",
}

// Decode validates a species payload, see habitat.Decode.
func Decode(f analysis.Fields) (Result, error) {
	if !f.Has(knownFields...) {
		return Result{}, &analysis.SchemaError{Kind: analysis.KindSpecies, Reason: "no species fields present"}
	}
	return Result{
		SpeciesName:        f.String("speciesName", "Unknown species"),
		ScientificName:     f.String("scientificName", "Not identified"),
		ConservationStatus: f.String("conservationStatus", "Unknown"),
		Population:         f.String("population", "Unknown"),
		Habitat:            f.String("habitat", "Unknown"),
		Threats:            f.Strings("threats", []string{"Unknown threats"}),
		Recommendations:    f.Strings("recommendations", []string{"Consult with wildlife experts"}),
		Confidence:         f.Confidence("confidence", 0.7),
	}, nil
}
