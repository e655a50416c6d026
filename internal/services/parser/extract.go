package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/indago/internal/models"
)

// extractJSON pulls the outermost JSON object from a completion.
// Providers often wrap the object in prose or markdown fences, so the
// span from the first '{' to the last '}' is taken as the candidate.
func extractJSON(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// decodeStructuredQuery turns raw completion text into a validated
// query. Any shortfall (no JSON object, malformed JSON, missing
// required fields) is an error for the caller to absorb.
func decodeStructuredQuery(text string) (models.StructuredQuery, error) {
	raw, ok := extractJSON(text)
	if !ok {
		return models.StructuredQuery{}, fmt.Errorf("no JSON object in completion")
	}

	var query models.StructuredQuery
	if err := json.Unmarshal([]byte(raw), &query); err != nil {
		return models.StructuredQuery{}, fmt.Errorf("failed to decode completion: %w", err)
	}

	if err := query.Validate(); err != nil {
		return models.StructuredQuery{}, fmt.Errorf("completion failed validation: %w", err)
	}

	return query, nil
}
