package models

// SearchRequest is the payload for submitting a new lead job
type SearchRequest struct {
	Query      string `json:"query" validate:"required,min=3"`
	Provider   string `json:"llm_provider" validate:"omitempty,oneof=openai claude gemini"`
	MaxResults int    `json:"max_results" validate:"omitempty,gte=1,lte=200"`
}

// ParseRequest is the payload for the synchronous parse preview endpoint
type ParseRequest struct {
	Query    string `json:"query" validate:"required,min=3"`
	Provider string `json:"llm_provider" validate:"omitempty,oneof=openai claude gemini"`
}
