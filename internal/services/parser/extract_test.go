package parser

import (
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{
			name:  "bare object",
			input: `{"roles": ["CTO"]}`,
			want:  `{"roles": ["CTO"]}`,
			ok:    true,
		},
		{
			name:  "object wrapped in prose",
			input: "Here is the result:\n{\"roles\": []}\nLet me know if you need more.",
			want:  `{"roles": []}`,
			ok:    true,
		},
		{
			name:  "markdown fenced object",
			input: "```json\n{\"roles\": [\"VP\"]}\n```",
			want:  `{"roles": ["VP"]}`,
			ok:    true,
		},
		{
			name:  "no object",
			input: "I could not parse that query.",
			ok:    false,
		},
		{
			name:  "empty input",
			input: "",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := extractJSON(tt.input)
			if ok != tt.ok {
				t.Fatalf("extractJSON(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeStructuredQuery(t *testing.T) {
	completion := `Here you go:
{
    "roles": ["Vendor Manager", "Head of Digital Transformation"],
    "locations": ["United States"],
    "company_size_min": 500,
    "company_size_max": null,
    "industries": [],
    "seniority_levels": ["Manager", "Head"]
}`

	query, err := decodeStructuredQuery(completion)
	if err != nil {
		t.Fatalf("decodeStructuredQuery failed: %v", err)
	}
	if len(query.Roles) != 2 {
		t.Errorf("Expected 2 roles, got %d", len(query.Roles))
	}
	if query.CompanySizeMin == nil || *query.CompanySizeMin != 500 {
		t.Error("Expected company_size_min 500")
	}
	if query.CompanySizeMax != nil {
		t.Error("Expected company_size_max nil")
	}
	if len(query.Industries) != 0 {
		t.Errorf("Expected no industries, got %d", len(query.Industries))
	}
}

func TestDecodeStructuredQueryRejectsMissingKeys(t *testing.T) {
	// locations key absent entirely
	if _, err := decodeStructuredQuery(`{"roles": ["CTO"]}`); err == nil {
		t.Error("Expected validation error when locations key is missing")
	}

	// empty lists are acceptable as long as the keys are present
	if _, err := decodeStructuredQuery(`{"roles": [], "locations": []}`); err != nil {
		t.Errorf("Expected empty lists to validate, got %v", err)
	}
}

func TestDecodeStructuredQueryRejectsMalformedJSON(t *testing.T) {
	if _, err := decodeStructuredQuery(`{"roles": ["CTO"`); err == nil {
		t.Error("Expected error for truncated JSON")
	}
	if _, err := decodeStructuredQuery("no braces at all"); err == nil {
		t.Error("Expected error when no object is present")
	}
}
