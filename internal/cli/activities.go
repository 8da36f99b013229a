package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

// parseActivities merges the JSON file (if any) with --activity flags, the
// flags win.
func parseActivities(values map[string]string, file string) (map[string]float64, error) {
	out := map[string]float64{}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read activities: %w", err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, &analysis.ValidationError{Field: "activities", Message: "activities file must be a JSON object of numbers"}
		}
	}
	for k, raw := range values {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &analysis.ValidationError{Field: k, Message: fmt.Sprintf("Activity %q must be a number", k)}
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}
