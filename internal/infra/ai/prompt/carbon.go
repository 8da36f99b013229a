package prompt

import (
	"encoding/json"
	"fmt"
)

// Carbon embeds the activity values as JSON. Map keys are marshalled in
// sorted order so identical input yields an identical prompt.
func Carbon(activities map[string]float64) (string, error) {
	data, err := json.Marshal(activities)
	if err != nil {
		return "", fmt.Errorf("marshal activities: %w", err)
	}
	return fmt.Sprintf("Analyze the carbon footprint based on the following data: %s. "+
		"Structure your response as a JSON object with the following fields: "+
		"totalEmissions (number in kg of CO2e), "+
		"breakdownByCategory (object with category names as keys and emission values as numbers), "+
		"comparisonToAverage (number representing percentage compared to average), "+
		"recommendations (array of strings), "+
		"confidence (number between 0 and 1).", data), nil
}
