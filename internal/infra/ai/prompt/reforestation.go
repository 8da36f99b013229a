package prompt

import "strconv"

type Site struct {
	Location     string
	SoilType     string
	Climate      string
	AreaHectares float64
}

func Reforestation(s Site) string {
	var b builder
	b.WriteString("Analyze this site for reforestation potential. ")
	b.sentence("The location is: ", s.Location, ". ")
	b.sentence("The soil type is: ", s.SoilType, ". ")
	b.sentence("The climate zone is: ", s.Climate, ". ")
	if s.AreaHectares > 0 {
		b.sentence("The planting area is ", strconv.FormatFloat(s.AreaHectares, 'f', -1, 64), " hectares. ")
	}
	b.WriteString("Structure your response as a JSON object with the following fields: suitableSpecies (array of strings), soilHealth (string), projectedGrowthRate (string), challenges (array of strings), recommendations (array of strings), confidenceScore (number between 0 and 1).")
	return b.String()
}
