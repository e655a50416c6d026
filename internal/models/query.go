package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// StructuredQuery is the machine-usable search criteria derived from a
// free-text lead request. All fields come from the language model; the
// parser substitutes FallbackQuery() whenever a provider response cannot
// be decoded into a valid instance.
type StructuredQuery struct {
	Roles           []string `json:"roles"`
	Locations       []string `json:"locations"`
	CompanySizeMin  *int     `json:"company_size_min,omitempty" validate:"omitempty,gte=1"`
	CompanySizeMax  *int     `json:"company_size_max,omitempty" validate:"omitempty,gte=1"`
	Industries      []string `json:"industries"`
	SeniorityLevels []string `json:"seniority_levels"`
}

// Validate checks a decoded query against the output contract.
// The roles and locations keys must be present in the provider's JSON
// (nil slices mean the model omitted them); empty lists are acceptable,
// the extractor treats them as unconstrained.
func (q *StructuredQuery) Validate() error {
	if q.Roles == nil {
		return fmt.Errorf("missing required field: roles")
	}
	if q.Locations == nil {
		return fmt.Errorf("missing required field: locations")
	}

	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid query fields: %w", err)
	}
	return nil
}

// FallbackQuery returns the fixed default substituted when language-model
// parsing fails for any reason. Downstream stages always receive a valid
// StructuredQuery.
func FallbackQuery() StructuredQuery {
	min := 100
	return StructuredQuery{
		Roles:           []string{"Manager", "Director"},
		Locations:       []string{"United States"},
		CompanySizeMin:  &min,
		Industries:      []string{},
		SeniorityLevels: []string{"Manager"},
	}
}
