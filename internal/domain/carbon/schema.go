package carbon

import "github.com/bryanwahyu/ecosense/internal/domain/analysis"

func Decode(f analysis.Fields) (Result, error) {
	if !f.Has("totalEmissions", "breakdownByCategory", "comparisonToAverage", "recommendations", "confidence") {
		return Result{}, &analysis.SchemaError{Kind: analysis.KindCarbon, Reason: "no carbon fields present"}
	}
	return Result{
		TotalEmissions:      f.Number("totalEmissions", 0),
		BreakdownByCategory: f.NumberMap("breakdownByCategory"),
		ComparisonToAverage: f.Number("comparisonToAverage", 0),
		Recommendations:     f.Strings("recommendations", []string{"No recommendations available"}),
		Confidence:          f.Confidence("confidence", 0.7),
	}, nil
}
