package fallback

import (
	"regexp"
	"strings"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/domain/habitat"
)

// filenameRules are checked in order, first match wins.
var filenameRules = []struct {
	re       *regexp.Regexp
	category habitat.Category
}{
	{regexp.MustCompile(`forest|tree|wood|jungle|rainforest|woodland|boreal|taiga`), habitat.Forest},
	{regexp.MustCompile(`wetland|marsh|swamp|bog|fen|mangrove|bayou`), habitat.Wetland},
	{regexp.MustCompile(`grass|prairie|meadow|savanna|steppe|plain|pasture`), habitat.Grassland},
	{regexp.MustCompile(`coast|beach|shore|dune|cliff|estuary`), habitat.Coastal},
	{regexp.MustCompile(`desert|arid|dune|sand|cactus|dry`), habitat.Desert},
	{regexp.MustCompile(`freshwater|river|lake|pond|stream|creek`), habitat.Freshwater},
	{regexp.MustCompile(`marine|ocean|reef|sea|coral|atoll`), habitat.Marine},
	{regexp.MustCompile(`mountain|alpine|highland|peak|ridge|hill`), habitat.Mountain},
	{regexp.MustCompile(`urban|city|park|garden|town`), habitat.Urban},
	{regexp.MustCompile(`farm|agricult|crop|orchard|field|plantation`), habitat.Agricultural},
	{regexp.MustCompile(`snow|ice|glacier|frozen|arctic|winter`), habitat.Tundra},
}

// ClassifyFilename maps filename keywords to a habitat category.
func ClassifyFilename(name string) (habitat.Category, bool) {
	name = strings.ToLower(name)
	for _, r := range filenameRules {
		if r.re.MatchString(name) {
			return r.category, true
		}
	}
	return "", false
}

// DetectCategory picks the category: the caller's choice first, then filename
// keywords, then the color profile, finally habitat.Natural.
func DetectCategory(p analysis.ImageProfile, filename string, provided habitat.Category) habitat.Category {
	if provided != "" {
		return provided
	}
	if c, ok := ClassifyFilename(filename); ok {
		return c
	}
	switch {
	case p.IsGreen && p.ColorProfile == analysis.ColorGreenish && !p.IsBrown:
		return habitat.Forest
	case p.IsGreen && p.HasWater:
		return habitat.Wetland
	case p.IsBlue && p.ColorProfile == analysis.ColorBluish:
		return habitat.Marine
	case p.IsBrown && (p.Brightness == analysis.BrightnessBright || p.ColorProfile == analysis.ColorReddish):
		return habitat.Desert
	case p.IsGreen && !p.IsBlue && !p.IsBrown:
		return habitat.Grassland
	case p.IsBlue && p.HasWater && p.IsBrown:
		return habitat.Coastal
	case p.Brightness == analysis.BrightnessBright && p.ColorProfile == analysis.ColorNeutral:
		return habitat.Mountain
	}
	return habitat.Natural
}

// Habitat generates fallback habitat assessments.
type Habitat struct {
	Dice Dice
}

func NewHabitat(d Dice) *Habitat { return &Habitat{Dice: d} }

// Generate builds a result for the detected category, adjusted by the image
// profile. Location, when given, is appended to the habitat type.
func (h *Habitat) Generate(p analysis.ImageProfile, filename, location string, provided habitat.Category) habitat.Result {
	seed := h.Dice.Seed()
	category := DetectCategory(p, filename, provided)

	var res habitat.Result
	if tpl, ok := habitatTable[category]; ok {
		res = tpl.build(seed, h.Dice.Jitter())
	} else {
		res = naturalHabitat(seed, p)
	}

	h.enhance(&res, category, p)

	if loc := strings.TrimSpace(location); loc != "" {
		res.HabitatType += " in " + loc
	}
	res.Confidence = analysis.Clamp01(res.Confidence)
	return res
}

// enhance keys off the detected category; subtype names like "Kelp Forest"
// do not say which category they came from.
func (h *Habitat) enhance(res *habitat.Result, category habitat.Category, p analysis.ImageProfile) {
	switch category {
	case habitat.Forest:
		if p.IsGreen {
			res.Confidence = min(0.95, res.Confidence+0.05)
		}
	case habitat.Marine, habitat.Freshwater, habitat.Wetland:
		if !p.HasWater && !p.IsBlue {
			res.Confidence = max(0.6, res.Confidence-0.1)
		}
	case habitat.Desert:
		if p.IsGreen && !p.IsBrown {
			res.Confidence = max(0.6, res.Confidence-0.1)
		}
	}

	// only sometimes, so repeated uploads do not all read the same
	if p.ColorProfile == analysis.ColorBright && p.IsGreen {
		if h.Dice.Jitter() > 0.3 {
			res.HealthStatus = habitat.HealthGood
		}
	} else if p.ColorProfile == analysis.ColorDark || p.Brightness == analysis.BrightnessDark {
		if h.Dice.Jitter() > 0.7 {
			res.HealthStatus = habitat.HealthModerate
		}
	}
}

func naturalHabitat(seed int, p analysis.ImageProfile) habitat.Result {
	prefix := "Natural"
	switch {
	case p.IsGreen && p.ColorProfile == analysis.ColorGreenish:
		prefix = "Vegetated"
	case p.IsBlue && p.ColorProfile == analysis.ColorBluish:
		prefix = "Aquatic"
	case p.IsBrown && p.Brightness == analysis.BrightnessBright:
		prefix = "Arid"
	case p.Brightness == analysis.BrightnessDark:
		prefix = "Shadowed"
	}
	return habitat.Result{
		HabitatType:  prefix + " Ecosystem",
		HealthStatus: habitat.HealthStatuses[seed%len(habitat.HealthStatuses)],
		Threats: []string{
			"Potential habitat fragmentation",
			"Possible invasive species presence",
			"Climate change impacts",
			"Human disturbance patterns",
		},
		Recommendations: []string{
			"Conduct a comprehensive ecological survey by qualified experts",
			"Establish a biodiversity monitoring program",
			"Develop a habitat management plan with local stakeholders",
			"Consider protected area status if ecologically significant",
		},
		Confidence: 0.65 + float64(seed)*0.02,
	}
}
