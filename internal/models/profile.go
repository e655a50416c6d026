package models

import (
	"time"
)

// Seniority level classifications derived from job titles.
// SeniorityFromTitle in the linkedin service tests these in priority order.
const (
	SeniorityExecutive = "Executive"
	SeniorityVP        = "VP"
	SeniorityDirector  = "Director"
	SeniorityManager   = "Manager"
	SenioritySenior    = "Senior"
	SeniorityIC        = "Individual Contributor"
)

// CandidateProfile is one extracted and scored search result.
// Identity is the ProfileURL: no two profiles in the same job's result set
// share one.
type CandidateProfile struct {
	ID             string `json:"id"`
	JobID          string `json:"job_id,omitempty"` // Owning lead job, set when profiles are persisted
	FullName       string `json:"full_name"`
	JobTitle       string `json:"job_title"`
	CompanyName    string `json:"company_name"`
	CompanyWebsite string `json:"company_website,omitempty"`
	ProfileURL     string `json:"linkedin_profile_url"`
	Email          string `json:"email_address,omitempty"`
	Phone          string `json:"phone_number,omitempty"`
	Industry       string `json:"industry,omitempty"`
	Location       string `json:"location"`
	CompanySize    string `json:"company_size,omitempty"`
	SeniorityLevel string `json:"seniority_level,omitempty"`
	// DecisionMaker is true when the derived seniority indicates purchasing
	// or hiring authority (Director, VP, Head, Manager).
	DecisionMaker   bool      `json:"decision_maker_indicator"`
	EngagementScore float64   `json:"engagement_score"` // 0..10, derived from title and company signals
	ScrapedAt       time.Time `json:"scraped_at"`
}
