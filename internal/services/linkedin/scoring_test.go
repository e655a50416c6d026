package linkedin

import (
	"testing"

	"github.com/ternarybob/indago/internal/models"
)

func TestClassifySeniority(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"CEO", "Executive"},
		{"Founder & CEO", "Executive"},
		{"President of Operations", "Executive"},
		{"Business Owner", "Executive"},
		{"VP of Engineering", "VP"},
		{"Vice President, Marketing", "VP"},
		{"SVP Global Sales", "VP"},
		{"Director of Product", "Director"},
		{"Head of Growth", "Director"},
		// The ladder is checked top-down: "head of" outranks "senior"
		{"Senior Head of Sales", "Director"},
		{"Engineering Manager", "Manager"},
		{"Tech Lead", "Manager"},
		{"Shift Supervisor", "Manager"},
		{"Senior Software Engineer", "Senior"},
		{"Sr. Accountant", "Senior"},
		{"Principal Architect", "Senior"},
		{"Software Engineer", "Individual Contributor"},
		{"", "Individual Contributor"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := classifySeniority(tt.title); got != tt.want {
				t.Errorf("classifySeniority(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestScoreProfileDecisionMaker(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Director of Product", true},
		{"VP of Engineering", true},
		{"Engineering Manager", true},
		{"CEO", false},
		{"Senior Software Engineer", false},
		{"Software Engineer", false},
	}

	for _, tt := range tests {
		profile := models.CandidateProfile{JobTitle: tt.title}
		scoreProfile(&profile)
		if profile.DecisionMaker != tt.want {
			t.Errorf("DecisionMaker for %q = %v, want %v", tt.title, profile.DecisionMaker, tt.want)
		}
	}
}

func TestEngagementScore(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		company string
		want    float64
	}{
		{"base score", "Software Engineer", "Acme", 5.0},
		{"title bonus", "Sales Manager", "Acme", 7.0},
		{"company bonus", "Software Engineer", "Datadog", 6.0},
		{"both bonuses", "Director of Sales", "Atlassian", 8.0},
		{"legal suffix blocks company bonus", "Director of Sales", "Widgets Inc", 7.0},
		{"short company name blocks bonus", "Director of Sales", "ACME", 7.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engagementScore(tt.title, tt.company)
			if got != tt.want {
				t.Errorf("engagementScore(%q, %q) = %.1f, want %.1f", tt.title, tt.company, got, tt.want)
			}
			if got < 0 || got > 10 {
				t.Errorf("score %.1f out of bounds", got)
			}
		})
	}
}

func TestMatchesCriteria(t *testing.T) {
	profile := models.CandidateProfile{
		JobTitle: "Marketing Director",
		Location: "Austin, Texas, United States",
	}

	tests := []struct {
		name  string
		query models.StructuredQuery
		want  bool
	}{
		{
			name:  "empty criteria match everything",
			query: models.StructuredQuery{},
			want:  true,
		},
		{
			name:  "role substring matches case-insensitively",
			query: models.StructuredQuery{Roles: []string{"director"}},
			want:  true,
		},
		{
			name:  "one matching role among several is enough",
			query: models.StructuredQuery{Roles: []string{"CTO", "Director"}},
			want:  true,
		},
		{
			name:  "no matching role rejects",
			query: models.StructuredQuery{Roles: []string{"Engineer"}},
			want:  false,
		},
		{
			name:  "location substring matches",
			query: models.StructuredQuery{Locations: []string{"austin"}},
			want:  true,
		},
		{
			name:  "role and location must both match",
			query: models.StructuredQuery{Roles: []string{"Director"}, Locations: []string{"Berlin"}},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesCriteria(&profile, tt.query); got != tt.want {
				t.Errorf("matchesCriteria = %v, want %v", got, tt.want)
			}
		})
	}
}
