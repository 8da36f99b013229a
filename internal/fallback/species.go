package fallback

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
	"github.com/bryanwahyu/ecosense/internal/domain/species"
)

// Group names a set of canned species records.
type Group string

const (
	GroupBird         Group = "bird"
	GroupMammal       Group = "mammal"
	GroupReptile      Group = "reptile"
	GroupAquatic      Group = "aquatic"
	GroupInsect       Group = "insect"
	GroupPlant        Group = "plant"
	GroupNorthAmerica Group = "north-america"
	GroupEurope       Group = "europe"
)

var speciesFilenameRules = []struct {
	keywords []string
	group    Group
}{
	{[]string{"bird", "avi"}, GroupBird},
	{[]string{"mammal", "wolf", "bear", "deer", "fox"}, GroupMammal},
	{[]string{"reptile", "snake", "lizard", "turtle"}, GroupReptile},
	{[]string{"fish", "aquatic", "marine"}, GroupAquatic},
	{[]string{"insect", "bug", "butterfly", "bee"}, GroupInsect},
	{[]string{"plant", "flower", "tree", "fern"}, GroupPlant},
}

// region maps a location keyword set to a group; label, when set, replaces
// the user location in habitat text.
var speciesRegionRules = []struct {
	keywords []string
	group    Group
	label    string
}{
	{[]string{"america", "usa", "canada"}, GroupNorthAmerica, ""},
	{[]string{"europe"}, GroupEurope, ""},
	{[]string{"asia"}, GroupMammal, "Asian regions"},
	{[]string{"africa"}, GroupMammal, "African regions"},
	{[]string{"australia", "oceania"}, GroupMammal, "Australian regions"},
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// ClassifySpecies maps filename keywords to a species group.
func ClassifySpecies(filename string) (Group, bool) {
	name := strings.ToLower(filename)
	for _, r := range speciesFilenameRules {
		if containsAny(name, r.keywords) {
			return r.group, true
		}
	}
	return "", false
}

// ClassifyRegion maps a free text location to a species group. The label is
// the location phrase used in habitat text for broad regions.
func ClassifyRegion(location string) (group Group, label string, ok bool) {
	loc := strings.ToLower(location)
	for _, r := range speciesRegionRules {
		if containsAny(loc, r.keywords) {
			return r.group, r.label, true
		}
	}
	return "", "", false
}

// Species generates fallback species identifications.
type Species struct {
	Dice Dice
}

func NewSpecies(d Dice) *Species { return &Species{Dice: d} }

// Generate tries the filename first, then the location, then returns the
// unknown-species record adjusted by keywords in notes.
func (s *Species) Generate(filename, location, notes string) species.Result {
	seed := s.Dice.Seed()
	location = strings.TrimSpace(location)

	var res species.Result
	if g, ok := ClassifySpecies(filename); ok {
		res = speciesTable[g].build(seed, s.Dice.Jitter(), location)
	} else if g, label, ok := ClassifyRegion(location); ok {
		// region groups describe the region itself, so location is not repeated
		res = speciesTable[g].build(seed, s.Dice.Jitter(), label)
	} else {
		res = unknownSpecies(seed, location, notes)
	}
	res.Confidence = analysis.Clamp01(res.Confidence)
	return res
}

func unknownSpecies(seed int, location, notes string) species.Result {
	res := species.Result{
		SpeciesName:        "Unknown Wildlife Species",
		ScientificName:     "Animalia sp.",
		ConservationStatus: "Data Deficient",
		Population:         "Unknown",
		Habitat:            "Various habitats",
		Threats: []string{
			"Habitat loss and fragmentation",
			"Climate change impacts",
			"Human-wildlife conflict",
			"Pollution",
		},
		Recommendations: []string{
			"Conduct field surveys to identify the species",
			"Document habitat preferences and behaviors",
			"Monitor population trends over time",
			"Implement local conservation education",
		},
		Confidence: 0.65 + float64(seed)*0.02,
	}
	if location != "" {
		res.Habitat = fmt.Sprintf("Found in %s and similar regions", location)
	}

	n := strings.ToLower(notes)
	switch {
	case strings.Contains(n, "endangered"), strings.Contains(n, "threatened"):
		res.ConservationStatus = "Endangered"
	case strings.Contains(n, "vulnerable"):
		res.ConservationStatus = "Vulnerable"
	case strings.Contains(n, "common"):
		res.ConservationStatus = "Least Concern"
	}
	return res
}
