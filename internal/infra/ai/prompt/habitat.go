package prompt

// Generation parameters for habitat analysis, lower temperature and a larger
// budget than the defaults.
const (
	HabitatTemperature float32 = 0.2
	HabitatMaxTokens   int32   = 4096
)

const habitatInstructions = `
Focus first and foremost on identifying the specific habitat type based on visual evidence in the image. Look for distinctive landforms, vegetation patterns, water features, and other ecological indicators.

For habitat type, be as specific as possible, choosing from categories such as:
- Forest (e.g., Temperate Deciduous Forest, Tropical Rainforest, Boreal/Taiga Forest, Mixed Woodland)
- Grassland (e.g., Tallgrass Prairie, Savanna, Steppe, Alpine Meadow)
- Desert (e.g., Hot Desert, Cold Desert, Scrubland, Xeric Shrubland)
- Wetland (e.g., Marsh, Swamp, Bog, Fen, Mangrove)
- Freshwater (e.g., Lake, River, Stream, Pond)
- Marine (e.g., Coral Reef, Coastal Waters, Open Ocean, Kelp Forest)
- Coastal (e.g., Beach, Estuary, Salt Marsh, Rocky Shore)
- Tundra (e.g., Arctic Tundra, Alpine Tundra)
- Mountain (e.g., Alpine, Subalpine, Montane Forest)
- Urban (e.g., Urban Park, Green Space, Community Garden)
- Agricultural (e.g., Cropland, Pasture, Orchard, Agroforestry)

Next, assess ecosystem health, categorizing as 'Good', 'Moderate', or 'Poor' based on visible signs of ecosystem integrity.
Then identify specific environmental threats visible in the image or likely in this habitat type.
Finally, provide actionable conservation recommendations tailored to this specific ecosystem.

Structure your response as a JSON object with the following fields:
{
  "habitatType": "Specific habitat type based on visual evidence",
  "healthStatus": "One of: Good, Moderate, Poor",
  "threats": ["Specific threat 1", "Specific threat 2", "Specific threat 3"],
  "recommendations": ["Specific recommendation 1", "Specific recommendation 2", "Specific recommendation 3"],
  "confidence": Number between 0 and 1 representing analysis confidence
}

Ensure your analysis is evidence-based, detailed, and ecologically sound, with particular emphasis on accurate habitat type identification.
`

// Habitat builds the habitat assessment prompt. category is the user's guess
// and is only offered for verification.
func Habitat(location, category string) string {
	var b builder
	b.WriteString("You are an expert ecologist analyzing this habitat image. Provide a comprehensive ecological assessment with particular focus on correctly identifying the specific habitat type. ")
	b.sentence("The location is: ", location, ". ")
	b.sentence("The user has indicated this may be a ", category, " habitat. Verify if this is correct based on visual evidence. ")
	b.WriteString(habitatInstructions)
	return b.String()
}
