package prompt

func Species(location, notes string) string {
	var b builder
	b.WriteString("Identify and analyze the species in this image. ")
	b.sentence("The location is: ", location, ". ")
	b.sentence("Additional information: ", notes, ". ")
	b.WriteString("Structure your response as a JSON object with the following fields: speciesName (string), scientificName (string), conservationStatus (string), population (string), habitat (string), threats (array of strings), recommendations (array of strings), confidence (number between 0 and 1).")
	return b.String()
}
