package carbon

import (
	"fmt"
	"math"
	"sort"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// Category groups activities in the breakdown
type Category string

const (
	Transportation Category = "transportation"
	Energy         Category = "energy"
	Food           Category = "food"
	Shopping       Category = "shopping"
	Waste          Category = "waste"
)

// Activity describes one input of the footprint calculator.
type Activity struct {
	Key      string
	Name     string
	Category Category
	Unit     string
}

// Known activity keys
const (
	CarMiles          = "car_miles_per_week"
	PublicTransport   = "public_transport_trips_per_week"
	Flights           = "flights_per_year"
	Electricity       = "electricity_kwh_per_month"
	NaturalGas        = "natural_gas_therms_per_month"
	MeatServings      = "meat_servings_per_week"
	DairyServings     = "dairy_servings_per_week"
	FoodWaste         = "food_waste_kg_per_week"
	ClothingPurchases = "clothing_items_per_month"
	Electronics       = "electronics_items_per_year"
	RecyclingRate     = "recycling_rate_percent"
	Composting        = "composting_kg_per_week"
)

// Catalog lists every activity the calculator understands, in display order.
var Catalog = []Activity{
	{CarMiles, "Car Travel", Transportation, "miles/week"},
	{PublicTransport, "Public Transport", Transportation, "trips/week"},
	{Flights, "Air Travel", Transportation, "flights/year"},
	{Electricity, "Electricity Usage", Energy, "kWh/month"},
	{NaturalGas, "Natural Gas", Energy, "therm/month"},
	{MeatServings, "Meat Consumption", Food, "servings/week"},
	{DairyServings, "Dairy Consumption", Food, "servings/week"},
	{FoodWaste, "Food Waste", Food, "kg/week"},
	{ClothingPurchases, "Clothing Purchases", Shopping, "items/month"},
	{Electronics, "Electronics", Shopping, "items/year"},
	{RecyclingRate, "Recycling Rate", Waste, "% of waste"},
	{Composting, "Composting", Waste, "kg/week"},
}

// Lookup finds an activity by key.
func Lookup(key string) (Activity, bool) {
	for _, a := range Catalog {
		if a.Key == key {
			return a, true
		}
	}
	return Activity{}, false
}

type Result struct {
	TotalEmissions      float64            `json:"totalEmissions"`
	BreakdownByCategory map[string]float64 `json:"breakdownByCategory"`
	ComparisonToAverage float64            `json:"comparisonToAverage"`
	Recommendations     []string           `json:"recommendations"`
	Confidence          float64            `json:"confidence"`
}

func (r Result) Score() float64 { return r.Confidence }

// Request carries activity values keyed by activity key (see Catalog).
type Request struct {
	Activities map[string]float64
}

// Validate rejects keys missing from Catalog, negative values and an input
// where every value is zero.
func (r Request) Validate() error {
	nonZero := false
	for _, k := range r.Keys() {
		v := r.Activities[k]
		if _, ok := Lookup(k); !ok {
			return &analysis.ValidationError{Field: k, Message: fmt.Sprintf("Unknown activity %q", k)}
		}
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &analysis.ValidationError{Field: k, Message: fmt.Sprintf("Activity %q must be a non-negative number", k)}
		}
		if v != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		return analysis.ErrNoActivity
	}
	return nil
}

// Keys returns activity keys sorted for stable prompts and cache keys.
func (r Request) Keys() []string {
	keys := make([]string, 0, len(r.Activities))
	for k := range r.Activities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
