package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bryanwahyu/ecosense/internal/domain/analysis"
)

var (
	ErrNoJSON = errors.New("no JSON object found in response")
	ErrParse  = errors.New("failed to parse JSON from response")
)

// ExtractStructured decodes the span from the first '{' to the last '}' of a
// model reply. Models often wrap the object in prose or code fences.
func ExtractStructured(text string) (analysis.Fields, error) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end < 0 || end < start {
		return nil, ErrNoJSON
	}

	var fields analysis.Fields
	if err := json.Unmarshal([]byte(text[start:end+1]), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fields, nil
}
