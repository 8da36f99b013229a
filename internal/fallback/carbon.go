package fallback

import (
	"math"
	"sort"

	"github.com/bryanwahyu/ecosense/internal/domain/carbon"
)

// AverageFootprint is the per person yearly footprint (kg CO2e) used for the
// comparison figure.
const AverageFootprint = 4000.0

// emission factor in kg CO2e per unit, and how many units make a year
type factor struct {
	perUnit  float64
	annually float64
}

var emissionFactors = map[string]factor{
	carbon.CarMiles:          {0.404, 52},
	carbon.PublicTransport:   {0.6, 52},
	carbon.Flights:           {255, 1},
	carbon.Electricity:       {0.39, 12},
	carbon.NaturalGas:        {5.3, 12},
	carbon.MeatServings:      {2.5, 52},
	carbon.DairyServings:     {0.6, 52},
	carbon.FoodWaste:         {2.5, 52},
	carbon.ClothingPurchases: {15, 12},
	carbon.Electronics:       {120, 1},
	carbon.Composting:        {-0.5, 52},
}

// baseline household waste emissions, reduced by the recycling rate
const wasteBaseline = 400.0

var carbonTips = map[carbon.Category][]string{
	carbon.Transportation: {
		"Replace short car trips with walking, cycling or public transport",
		"Combine errands and consider car-pooling to cut vehicle miles",
		"Choose rail over short-haul flights where possible",
	},
	carbon.Energy: {
		"Switch to a renewable electricity tariff or install solar panels",
		"Improve home insulation and lower thermostat settings by 1-2 degrees",
		"Replace old appliances and lighting with energy-efficient models",
	},
	carbon.Food: {
		"Reduce red meat consumption and try plant-based meals several days a week",
		"Plan meals and store food properly to cut food waste",
		"Buy seasonal, locally produced food",
	},
	carbon.Shopping: {
		"Buy fewer, higher quality clothes and choose second-hand items",
		"Repair and keep electronics longer before replacing them",
	},
	carbon.Waste: {
		"Increase recycling of paper, glass, metal and plastics",
		"Compost food and garden waste instead of sending it to landfill",
	},
}

// Carbon estimates a footprint from activity values using fixed emission
// factors.
type Carbon struct{}

func NewCarbon() *Carbon { return &Carbon{} }

// Generate validates the request and returns the estimate. An all-zero
// request is rejected with analysis.ErrNoActivity.
func (c *Carbon) Generate(req carbon.Request) (carbon.Result, error) {
	if err := req.Validate(); err != nil {
		return carbon.Result{}, err
	}

	breakdown := map[carbon.Category]float64{}
	for _, key := range req.Keys() {
		act, ok := carbon.Lookup(key)
		if !ok {
			continue
		}
		v := req.Activities[key]
		if key == carbon.RecyclingRate {
			rate := math.Min(100, v)
			breakdown[act.Category] += wasteBaseline * (1 - rate/100)
			continue
		}
		f := emissionFactors[key]
		breakdown[act.Category] += v * f.perUnit * f.annually
	}

	res := carbon.Result{
		BreakdownByCategory: make(map[string]float64, len(breakdown)),
		Confidence:          0.6,
	}
	for cat, kg := range breakdown {
		kg = math.Max(0, round1(kg))
		res.BreakdownByCategory[string(cat)] = kg
		res.TotalEmissions += kg
	}
	res.TotalEmissions = round1(res.TotalEmissions)
	res.ComparisonToAverage = round1((res.TotalEmissions/AverageFootprint - 1) * 100)
	res.Recommendations = recommendFor(breakdown)
	return res, nil
}

// recommendFor returns tips for the three largest non-zero categories.
func recommendFor(breakdown map[carbon.Category]float64) []string {
	cats := make([]carbon.Category, 0, len(breakdown))
	for cat, kg := range breakdown {
		if kg > 0 {
			cats = append(cats, cat)
		}
	}
	sort.Slice(cats, func(i, j int) bool {
		if breakdown[cats[i]] == breakdown[cats[j]] {
			return cats[i] < cats[j]
		}
		return breakdown[cats[i]] > breakdown[cats[j]]
	})
	if len(cats) > 3 {
		cats = cats[:3]
	}

	var out []string
	for _, cat := range cats {
		tips := carbonTips[cat]
		out = append(out, tips[:min(2, len(tips))]...)
	}
	if len(out) == 0 {
		out = []string{"Keep tracking your activities to find reduction opportunities"}
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
