package fallback

import "github.com/bryanwahyu/ecosense/internal/domain/habitat"

type habitatTemplate struct {
	subtypes        []string
	health          string
	threats         []string
	recommendations []string
	base            float64
}

func (t habitatTemplate) build(seed int, jitter float64) habitat.Result {
	return habitat.Result{
		HabitatType:     t.subtypes[seed%len(t.subtypes)],
		HealthStatus:    t.health,
		Threats:         clone(t.threats),
		Recommendations: clone(t.recommendations),
		Confidence:      t.base + jitter*0.05,
	}
}

var habitatTable = map[habitat.Category]habitatTemplate{
	habitat.Forest: {
		subtypes: []string{
			"Temperate Deciduous Forest", "Tropical Rainforest", "Boreal/Taiga Forest",
			"Mixed Woodland Forest", "Temperate Coniferous Forest", "Cloud Forest",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Potential deforestation or logging pressure",
			"Fragmentation of forest stands",
			"Invasive species competition",
			"Climate change impacts on forest composition",
		},
		recommendations: []string{
			"Establish forest continuity corridors to reduce fragmentation",
			"Monitor keystone tree species health and reproduction",
			"Implement sustainable forestry practices if harvesting occurs",
			"Conduct invasive species removal and native reforestation",
		},
		base: 0.75,
	},
	habitat.Wetland: {
		subtypes: []string{
			"Freshwater Marsh", "Forested Wetland", "Peat Bog",
			"Mangrove Swamp", "Riparian Wetland", "Prairie Pothole",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Hydrological alterations affecting water levels",
			"Water quality degradation or pollution",
			"Invasive wetland plant species",
			"Encroachment from surrounding land use",
		},
		recommendations: []string{
			"Maintain or restore natural hydrological regimes",
			"Establish buffer zones to filter runoff and pollutants",
			"Monitor water quality parameters regularly",
			"Control invasive species that alter wetland function",
		},
		base: 0.75,
	},
	habitat.Grassland: {
		subtypes: []string{
			"Tallgrass Prairie", "Shortgrass Prairie", "Savanna Grassland",
			"Alpine Meadow", "Temperate Grassland", "Steppe",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Conversion to agricultural land",
			"Overgrazing impacts on vegetation structure",
			"Woody plant encroachment",
			"Altered fire regimes",
		},
		recommendations: []string{
			"Implement rotational grazing management if livestock present",
			"Consider prescribed burning to maintain grassland structure",
			"Control woody plant encroachment",
			"Restore native grass and forb species diversity",
		},
		base: 0.75,
	},
	habitat.Coastal: {
		subtypes: []string{
			"Sandy Beach Ecosystem", "Rocky Coastal Shore", "Coastal Dune System",
			"Salt Marsh", "Coastal Bluff", "Estuary",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Coastal erosion and habitat loss",
			"Marine debris and pollution",
			"Sea level rise impacts",
			"Disruption of natural coastal processes",
		},
		recommendations: []string{
			"Implement nature-based coastal protection measures",
			"Establish marine protected areas for critical habitats",
			"Conduct regular cleanup and pollution monitoring",
			"Develop climate adaptation strategies for sea level rise",
		},
		base: 0.75,
	},
	habitat.Desert: {
		subtypes: []string{
			"Hot Desert Ecosystem", "Cold Desert", "Semi-Arid Desert",
			"Desert Scrubland", "Desert Ephemeral Wash", "Desert Pavement",
		},
		health: habitat.HealthGood,
		threats: []string{
			"Limited water resource availability",
			"Fragile soil crust disturbance",
			"Invasive plant species introduction",
			"Off-road vehicle impacts",
		},
		recommendations: []string{
			"Monitor groundwater levels and spring flows",
			"Establish designated recreation areas to minimize impact",
			"Control invasive species before widespread establishment",
			"Protect sensitive microhabitats like washes and springs",
		},
		base: 0.73,
	},
	habitat.Freshwater: {
		subtypes: []string{
			"Lake Ecosystem", "River Ecosystem", "Stream Habitat",
			"Freshwater Pond", "Spring System", "Watershed",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Nutrient pollution indicators visible",
			"Altered hydrology affecting aquatic habitats",
			"Invasive aquatic species presence",
			"Sedimentation from watershed activities",
		},
		recommendations: []string{
			"Monitor water quality parameters including nutrients",
			"Restore riparian vegetation to filter runoff",
			"Survey for invasive aquatic species regularly",
			"Work with watershed stakeholders to reduce upstream impacts",
		},
		base: 0.78,
	},
	habitat.Marine: {
		subtypes: []string{
			"Coral Reef Ecosystem", "Kelp Forest", "Seagrass Meadow",
			"Pelagic Zone", "Continental Shelf", "Intertidal Zone",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Potential coral bleaching or damage",
			"Marine debris including plastics",
			"Evidence of fishing pressure",
			"Reduced biodiversity indicators",
		},
		recommendations: []string{
			"Establish marine protected areas with no-take zones",
			"Conduct regular clean-up activities for marine debris",
			"Monitor keystone species population trends",
			"Implement fishing restrictions in critical habitat areas",
		},
		base: 0.77,
	},
	habitat.Mountain: {
		subtypes: []string{
			"Alpine Ecosystem", "Subalpine Forest Zone", "Montane Forest",
			"Mountain Valley", "Mountain Ridge", "High Plateau",
		},
		health: habitat.HealthGood,
		threats: []string{
			"Climate change impacts on snow patterns and hydrology",
			"Tourism and recreational pressures",
			"Fragile vegetation damage",
			"Treeline shifting due to warming temperatures",
		},
		recommendations: []string{
			"Monitor climate indicators at various elevations",
			"Manage visitor access to sensitive alpine areas",
			"Establish monitoring plots for vegetation change",
			"Protect alpine watershed headwaters",
		},
		base: 0.76,
	},
	habitat.Urban: {
		subtypes: []string{
			"Urban Park Ecosystem", "Urban Greenway", "Community Garden",
			"Restored Urban Wetland", "Street Tree Corridor", "Urban Green Roof",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Fragmentation between habitat patches",
			"Non-native species dominance",
			"Soil compaction and disturbance",
			"Urban pollutants including noise and light",
		},
		recommendations: []string{
			"Increase native plant diversity in landscaping",
			"Create wildlife corridors between green spaces",
			"Implement green infrastructure for stormwater management",
			"Engage community in urban biodiversity stewardship",
		},
		base: 0.80,
	},
	habitat.Agricultural: {
		subtypes: []string{
			"Mixed Agricultural Landscape", "Sustainable Cropland", "Agroforestry System",
			"Orchard Ecosystem", "Pastureland", "Agricultural Wetland",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Soil erosion indicators in cultivated areas",
			"Limited habitat diversity from monoculture",
			"Potential chemical inputs affecting biodiversity",
			"Reduced wildlife corridors between natural areas",
		},
		recommendations: []string{
			"Implement conservation tillage to reduce soil erosion",
			"Establish field margins and hedgerows for wildlife",
			"Consider integrated pest management to reduce chemical use",
			"Create buffer zones along watercourses to filter runoff",
		},
		base: 0.79,
	},
	habitat.Tundra: {
		subtypes: []string{
			"Arctic Tundra", "Alpine Tundra", "Polar Desert",
			"Snow-dominated Ecosystem", "Glacier Foreland", "Permafrost Region",
		},
		health: habitat.HealthModerate,
		threats: []string{
			"Rapid warming affecting permafrost stability",
			"Changes in snow cover duration and depth",
			"Altered plant phenology and growing seasons",
			"Potential invasive species with warming climate",
		},
		recommendations: []string{
			"Monitor temperature and permafrost changes",
			"Document shifts in vegetation zones and flowering times",
			"Establish long-term research plots for climate change impacts",
			"Protect critical wildlife migration routes and breeding areas",
		},
		base: 0.81,
	},
}
