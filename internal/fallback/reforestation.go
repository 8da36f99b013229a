package fallback

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/domain/reforestation"
)

// seedlings planted per hectare at ~3 m spacing
const seedlingsPerHectare = 1100

type siteTemplate struct {
	species         []string
	growth          string
	challenges      []string
	recommendations []string
}

var siteTable = map[reforestation.Climate]siteTemplate{
	reforestation.Tropical: {
		species: []string{
			"Mahogany (Swietenia macrophylla)", "Teak (Tectona grandis)",
			"Kapok (Ceiba pentandra)", "Ipe (Handroanthus spp.)",
		},
		growth: "Fast (1.5-2.5 m/year)",
		challenges: []string{
			"Rapid weed and vine competition",
			"Nutrient leaching from heavy rainfall",
			"Pressure from illegal logging",
		},
		recommendations: []string{
			"Use assisted natural regeneration around remnant trees",
			"Weed around seedlings every 2-3 months in the first two years",
		},
	},
	reforestation.Dry: {
		species: []string{
			"Acacia (Vachellia tortilis)", "Mesquite (Prosopis glandulosa)",
			"Neem (Azadirachta indica)", "Desert Willow (Chilopsis linearis)",
		},
		growth: "Slow (0.3-0.6 m/year)",
		challenges: []string{
			"Low and irregular rainfall",
			"High seedling mortality in the first dry season",
			"Grazing pressure from livestock",
		},
		recommendations: []string{
			"Build micro-catchments or half-moon pits to harvest rainwater",
			"Plant at the start of the rainy season and mulch heavily",
		},
	},
	reforestation.Temperate: {
		species: []string{
			"Red Oak (Quercus rubra)", "Sugar Maple (Acer saccharum)",
			"Douglas Fir (Pseudotsuga menziesii)", "Eastern White Pine (Pinus strobus)",
		},
		growth: "Moderate (0.6-1.2 m/year)",
		challenges: []string{
			"Deer browsing on young seedlings",
			"Competition from invasive shrubs",
			"Late spring frosts",
		},
		recommendations: []string{
			"Protect seedlings with tree shelters or fencing",
			"Clear invasive shrubs before planting",
		},
	},
	reforestation.Continental: {
		species: []string{
			"Scots Pine (Pinus sylvestris)", "Silver Birch (Betula pendula)",
			"Norway Spruce (Picea abies)", "Siberian Larch (Larix sibirica)",
		},
		growth: "Moderate (0.4-0.9 m/year)",
		challenges: []string{
			"Short growing season",
			"Frost heave damaging young roots",
			"Summer drought stress",
		},
		recommendations: []string{
			"Use container-grown seedlings hardened for frost",
			"Plant birch as a nurse species for slower conifers",
		},
	},
	reforestation.Polar: {
		species: []string{
			"Dwarf Birch (Betula nana)", "Arctic Willow (Salix arctica)",
			"Black Spruce (Picea mariana)",
		},
		growth: "Very slow (0.1-0.3 m/year)",
		challenges: []string{
			"Extremely short growing season",
			"Permafrost and poorly drained soils",
			"Strong winds and snow abrasion",
		},
		recommendations: []string{
			"Plant in sheltered microsites such as lee slopes",
			"Favour local seed sources adapted to cold",
		},
	},
}

var climateKeywords = []struct {
	keywords []string
	climate  reforestation.Climate
}{
	{[]string{"amazon", "brazil", "congo", "indonesia", "borneo", "sumatra", "tropic"}, reforestation.Tropical},
	{[]string{"sahara", "sahel", "arizona", "desert", "arid", "kenya"}, reforestation.Dry},
	{[]string{"siberia", "canada", "mongolia", "finland"}, reforestation.Continental},
	{[]string{"arctic", "greenland", "svalbard", "tundra"}, reforestation.Polar},
}

// ClassifyClimate picks a climate zone: the provided value, then location
// keywords, then the image profile, defaulting to temperate.
func ClassifyClimate(provided, location string, p analysis.ImageProfile) reforestation.Climate {
	if c, ok := reforestation.ParseClimate(provided); ok {
		return c
	}
	loc := strings.ToLower(location)
	for _, r := range climateKeywords {
		if containsAny(loc, r.keywords) {
			return r.climate
		}
	}
	switch {
	case p.IsBrown && !p.IsGreen:
		return reforestation.Dry
	case p.IsGreen && p.HasWater:
		return reforestation.Tropical
	}
	return reforestation.Temperate
}

// Reforestation generates fallback site assessments.
type Reforestation struct {
	Dice Dice
}

func NewReforestation(d Dice) *Reforestation { return &Reforestation{Dice: d} }

func (r *Reforestation) Generate(p analysis.ImageProfile, req reforestation.Request) reforestation.Result {
	climate := ClassifyClimate(req.Climate, req.Location, p)
	tpl := siteTable[climate]

	recs := clone(tpl.recommendations)
	recs = append(recs, "Plant a mix of at least three native species to build resilience")
	if req.AreaHectares > 0 {
		recs = append(recs, fmt.Sprintf("Plan for roughly %d seedlings across %.1f ha",
			int(req.AreaHectares*seedlingsPerHectare), req.AreaHectares))
	}

	return reforestation.Result{
		SuitableSpecies:     clone(tpl.species),
		SoilHealth:          soilHealth(p, req.SoilType),
		ProjectedGrowthRate: tpl.growth,
		Challenges:          clone(tpl.challenges),
		Recommendations:     recs,
		ConfidenceScore:     analysis.Clamp01(0.6 + r.Dice.Jitter()*0.05),
	}
}

func soilHealth(p analysis.ImageProfile, soilType string) string {
	health := "Unknown"
	switch {
	case p.IsGreen:
		health = "Fair"
	case p.IsBrown:
		health = "Degraded"
	}
	if s := strings.TrimSpace(soilType); s != "" {
		health += fmt.Sprintf(" (%s soil)", strings.ToLower(s))
	}
	return health
}
