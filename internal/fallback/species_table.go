package fallback

import (
	"fmt"

	"github.com/bryanwahyu/ecosense/internal/domain/species"
)

type speciesProfile struct {
	name, scientific, status, population, habitat string
	// withLocation is a format taking the location; empty means
	// "<habitat> including <location>".
	withLocation string
	threats      []string
}

type speciesGroup struct {
	members         []speciesProfile
	recommendations []string
	base, spread    float64
	// fixedHabitat groups ignore the location entirely
	fixedHabitat bool
}

func (g speciesGroup) build(seed int, jitter float64, location string) species.Result {
	p := g.members[seed%len(g.members)]
	hab := p.habitat
	if location != "" && !g.fixedHabitat {
		if p.withLocation != "" {
			hab = fmt.Sprintf(p.withLocation, location)
		} else {
			hab = p.habitat + " including " + location
		}
	}
	return species.Result{
		SpeciesName:        p.name,
		ScientificName:     p.scientific,
		ConservationStatus: p.status,
		Population:         p.population,
		Habitat:            hab,
		Threats:            clone(p.threats),
		Recommendations:    clone(g.recommendations),
		Confidence:         g.base + jitter*g.spread,
	}
}

var speciesTable = map[Group]speciesGroup{
	GroupBird: {
		members: []speciesProfile{
			{
				name: "Peregrine Falcon", scientific: "Falco peregrinus", status: "Least Concern",
				population: "Stable, estimated 140,000 individuals globally",
				habitat:    "Varied habitats including urban areas, cliffs, and open landscapes",
				threats: []string{
					"Pesticide exposure in some regions",
					"Poaching and illegal wildlife trade",
					"Collision with human structures",
					"Habitat disturbance at nesting sites",
				},
			},
			{
				name: "Bald Eagle", scientific: "Haliaeetus leucocephalus", status: "Least Concern (Recovered)",
				population: "Increasing, estimated 250,000 individuals in North America",
				habitat:    "Lakes, rivers, coastal areas with large trees for nesting",
				threats: []string{
					"Lead poisoning from ammunition in consumed prey",
					"Habitat loss in some regions",
					"Environmental contaminants and pollution",
					"Human disturbance of nesting areas",
				},
			},
			{
				name: "Atlantic Puffin", scientific: "Fratercula arctica", status: "Vulnerable",
				population: "Declining, estimated 5-6 million individuals globally",
				habitat:    "Coastal cliffs and rocky islands in North Atlantic regions",
				threats: []string{
					"Climate change affecting prey distribution",
					"Overfishing of key prey species",
					"Pollution and oil spills",
					"Invasive predators on breeding islands",
				},
			},
			{
				name: "Red-crowned Crane", scientific: "Grus japonensis", status: "Endangered",
				population: "Declining, estimated 3,000 individuals globally",
				habitat:    "Wetlands, marshes, and agricultural fields",
				threats: []string{
					"Wetland drainage and habitat conversion",
					"Agricultural intensification",
					"Power line collisions",
					"Human disturbance in breeding areas",
				},
			},
		},
		recommendations: []string{
			"Protect key nesting and foraging habitats",
			"Reduce use of harmful pesticides and contaminants",
			"Support habitat restoration projects",
			"Monitor population trends and breeding success",
		},
		base: 0.72, spread: 0.08,
	},
	GroupMammal: {
		members: []speciesProfile{
			{
				name: "Gray Wolf", scientific: "Canis lupus", status: "Least Concern (Varies by region)",
				population: "Stable in some areas, estimated 300,000 globally",
				habitat:    "Forests, mountains, tundra, and grasslands",
				threats: []string{
					"Habitat fragmentation and loss",
					"Human persecution and hunting",
					"Hybridization with domestic dogs",
					"Reduced prey availability",
				},
			},
			{
				name: "Bengal Tiger", scientific: "Panthera tigris tigris", status: "Endangered",
				population: "Decreasing, estimated 2,500-3,000 individuals",
				habitat:    "Tropical and subtropical forests, mangroves, and grasslands",
				threats: []string{
					"Poaching for illegal wildlife trade",
					"Habitat loss and fragmentation",
					"Human-wildlife conflict",
					"Reduction in prey base",
				},
			},
			{
				name: "African Elephant", scientific: "Loxodonta africana", status: "Endangered",
				population: "Decreasing, estimated 415,000 individuals",
				habitat:    "Savanna, forest, desert, and marshes",
				threats: []string{
					"Poaching for ivory and bushmeat",
					"Habitat loss and fragmentation",
					"Human-elephant conflict",
					"Climate change affecting water availability",
				},
			},
			{
				name: "Northern White-tailed Deer", scientific: "Odocoileus virginianus", status: "Least Concern",
				population: "Abundant, estimated 30 million in North America",
				habitat:    "Forests, fields, and suburban areas",
				threats: []string{
					"Vehicle collisions",
					"Habitat fragmentation",
					"Diseases like Chronic Wasting Disease",
					"Overabundance in some regions",
				},
			},
		},
		recommendations: []string{
			"Establish and enforce protected areas",
			"Implement anti-poaching measures",
			"Develop wildlife corridors to connect fragmented habitats",
			"Mitigate human-wildlife conflict through community programs",
		},
		base: 0.75, spread: 0.08,
	},
	GroupReptile: {
		members: []speciesProfile{
			{
				name: "Komodo Dragon", scientific: "Varanus komodoensis", status: "Endangered",
				population: "Decreasing, estimated 3,000-4,000 individuals",
				habitat:    "Tropical savannas and forests on Indonesian islands",
				threats: []string{
					"Habitat loss and fragmentation",
					"Poaching and illegal wildlife trade",
					"Human encroachment",
					"Natural disasters and climate change",
				},
			},
			{
				name: "Galapagos Giant Tortoise", scientific: "Chelonoidis niger", status: "Vulnerable",
				population: "Increasing with conservation, estimated 20,000 individuals",
				habitat:    "Arid lowlands and humid highlands of Galapagos Islands",
				threats: []string{
					"Historical exploitation and hunting",
					"Introduced predators and competitors",
					"Habitat degradation",
					"Climate change affecting food availability",
				},
			},
			{
				name: "American Alligator", scientific: "Alligator mississippiensis", status: "Least Concern (Recovered)",
				population: "Stable, estimated 5 million individuals",
				habitat:    "Freshwater wetlands, swamps, marshes, and lakes",
				threats: []string{
					"Habitat loss and fragmentation",
					"Water pollution and contamination",
					"Human-wildlife conflict",
					"Illegal poaching in some areas",
				},
			},
		},
		recommendations: []string{
			"Protect critical habitat and nesting sites",
			"Control invasive species that impact reptiles",
			"Enforce regulations against wildlife trafficking",
			"Implement education programs to reduce fear and persecution",
		},
		base: 0.73, spread: 0.07,
	},
	GroupAquatic: {
		members: []speciesProfile{{
			name: "Humpback Whale", scientific: "Megaptera novaeangliae", status: "Least Concern (Recovered)",
			population:   "Increasing, estimated 80,000 individuals globally",
			habitat:      "Oceans worldwide, coastal areas during migration",
			withLocation: "Oceans worldwide including %s",
			threats: []string{
				"Ship strikes and vessel disturbance",
				"Entanglement in fishing gear",
				"Underwater noise pollution",
				"Climate change affecting prey distribution",
			},
		}},
		recommendations: []string{
			"Enforce vessel speed limits in critical habitats",
			"Reduce marine debris and abandoned fishing gear",
			"Protect critical feeding and breeding areas",
			"Continue monitoring population recovery",
		},
		base: 0.76, spread: 0.07,
	},
	GroupInsect: {
		members: []speciesProfile{{
			name: "Monarch Butterfly", scientific: "Danaus plexippus", status: "Endangered",
			population: "Severe decline, down 80% in eastern populations in two decades",
			habitat:    "Milkweed habitats across North America",
			threats: []string{
				"Habitat loss and fragmentation",
				"Decline in milkweed availability",
				"Pesticide use in agricultural areas",
				"Climate change affecting migration patterns",
			},
		}},
		recommendations: []string{
			"Plant native milkweed and flowering plants",
			"Reduce pesticide use in monarch habitats",
			"Protect overwintering sites in Mexico and California",
			"Support community-based monitoring programs",
		},
		base: 0.78, spread: 0.07,
	},
	GroupPlant: {
		members: []speciesProfile{{
			name: "Giant Sequoia", scientific: "Sequoiadendron giganteum", status: "Endangered",
			population:   "Limited range, approximately 75,000 mature trees",
			habitat:      "Western Sierra Nevada mountains in California",
			withLocation: "Western Sierra Nevada mountains in California, including %s",
			threats: []string{
				"Climate change and drought",
				"Altered fire regimes",
				"Air pollution",
				"Limited natural regeneration",
			},
		}},
		recommendations: []string{
			"Implement prescribed burning programs",
			"Protect remaining old-growth groves",
			"Monitor and treat for pests and diseases",
			"Create seed banks for conservation",
		},
		base: 0.81, spread: 0.05,
	},
	GroupNorthAmerica: {
		members: []speciesProfile{
			{
				name: "American Bison", scientific: "Bison bison", status: "Near Threatened",
				population: "Stable, approximately 30,000 wild individuals",
				habitat:    "Grasslands, prairies, and forest edges",
				threats: []string{
					"Habitat fragmentation and loss",
					"Genetic isolation of small populations",
					"Disease transmission from livestock",
					"Climate change affecting grassland ecosystems",
				},
			},
			{
				name: "Grizzly Bear", scientific: "Ursus arctos horribilis", status: "Vulnerable (Varies by region)",
				population: "Approximately 55,000 wild individuals globally, 1,800 in contiguous US",
				habitat:    "Forests, mountains, tundra, and meadows",
				threats: []string{
					"Habitat loss and fragmentation",
					"Human-bear conflicts",
					"Reduced food sources due to climate change",
					"Small isolated populations with limited genetic exchange",
				},
			},
		},
		recommendations: []string{
			"Establish and maintain wildlife corridors",
			"Implement conflict reduction strategies",
			"Support habitat restoration projects",
			"Conduct regular population monitoring",
		},
		base: 0.71, spread: 0.09,
		fixedHabitat: true,
	},
	GroupEurope: {
		members: []speciesProfile{
			{
				name: "Eurasian Lynx", scientific: "Lynx lynx", status: "Least Concern (Regionally Variable)",
				population: "Stable, approximately 10,000 individuals in Europe",
				habitat:    "Temperate forests, taiga, and montane forests",
				threats: []string{
					"Habitat fragmentation",
					"Poaching and illegal hunting",
					"Reduction in prey species",
					"Vehicle collisions",
				},
			},
			{
				name: "European Bison", scientific: "Bison bonasus", status: "Near Threatened",
				population: "Increasing, approximately 7,000 individuals",
				habitat:    "Mixed deciduous and coniferous forests and forest meadows",
				threats: []string{
					"Limited genetic diversity",
					"Habitat fragmentation",
					"Disease transmission from livestock",
					"Human disturbance",
				},
			},
		},
		recommendations: []string{
			"Continue reintroduction programs in suitable habitats",
			"Maintain genetic diversity through managed breeding",
			"Establish protected corridors between habitats",
			"Reduce conflict with human activities",
		},
		base: 0.74, spread: 0.08,
		fixedHabitat: true,
	},
}
