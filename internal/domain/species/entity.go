package species

import "github.com/bryanwahyu/ecosense/internal/domain/analysis"

type Result struct {
	SpeciesName        string   `json:"speciesName"`
	ScientificName     string   `json:"scientificName"`
	ConservationStatus string   `json:"conservationStatus"`
	Population         string   `json:"population"`
	Habitat            string   `json:"habitat"`
	Threats            []string `json:"threats"`
	Recommendations    []string `json:"recommendations"`
	Confidence         float64  `json:"confidence"`
}

func (r Result) Score() float64 { return r.Confidence }

// Request for species identification. Notes is free text such as
// "seen near the river, looks endangered".
type Request struct {
	Upload   *analysis.Upload
	Location string
	Notes    string
}

func (r Request) Validate() error {
	if r.Upload.Empty() {
		return analysis.ErrImageRequired
	}
	return nil
}
