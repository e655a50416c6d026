package linkedin

import (
	"strings"

	"github.com/ternarybob/indago/internal/models"
)

// Seniority keyword ladder, checked top-down; the first matching rung
// wins so "Senior Head of Sales" classifies as Director, not Senior.
var seniorityLadder = []struct {
	level    string
	keywords []string
}{
	{models.SeniorityExecutive, []string{"ceo", "president", "founder", "owner"}},
	{models.SeniorityVP, []string{"vp", "vice president", "svp"}},
	{models.SeniorityDirector, []string{"director", "head of"}},
	{models.SeniorityManager, []string{"manager", "lead", "supervisor"}},
	{models.SenioritySenior, []string{"senior", "sr.", "principal"}},
}

// decisionMakerLevels are the seniority levels treated as having
// buying authority.
var decisionMakerLevels = map[string]bool{
	models.SeniorityDirector: true,
	models.SeniorityVP:       true,
	"Head":                   true,
	models.SeniorityManager:  true,
}

// classifySeniority maps a job title onto the seniority ladder.
func classifySeniority(jobTitle string) string {
	title := strings.ToLower(jobTitle)
	for _, rung := range seniorityLadder {
		for _, keyword := range rung.keywords {
			if strings.Contains(title, keyword) {
				return rung.level
			}
		}
	}
	return models.SeniorityIC
}

// engagementScore estimates outreach value: a base of 5, +2 for
// decision-making title keywords, +1 for an established-looking
// company name, capped at 10.
func engagementScore(jobTitle, companyName string) float64 {
	score := 5.0

	title := strings.ToLower(jobTitle)
	for _, keyword := range []string{"manager", "director", "vp", "head"} {
		if strings.Contains(title, keyword) {
			score += 2.0
			break
		}
	}

	company := strings.ToLower(companyName)
	if len(companyName) > 5 && !strings.Contains(company, "inc") && !strings.Contains(company, "llc") && !strings.Contains(company, "corp") {
		score += 1.0
	}

	if score > 10.0 {
		score = 10.0
	}
	return score
}

// scoreProfile fills the derived fields on an extracted profile.
func scoreProfile(profile *models.CandidateProfile) {
	profile.SeniorityLevel = classifySeniority(profile.JobTitle)
	profile.DecisionMaker = decisionMakerLevels[profile.SeniorityLevel]
	profile.EngagementScore = engagementScore(profile.JobTitle, profile.CompanyName)
}

// matchesCriteria applies the role and location filters. An empty
// criteria list never constrains; a populated one requires at least one
// case-insensitive substring match.
func matchesCriteria(profile *models.CandidateProfile, query models.StructuredQuery) bool {
	if len(query.Roles) > 0 {
		title := strings.ToLower(profile.JobTitle)
		matched := false
		for _, role := range query.Roles {
			if strings.Contains(title, strings.ToLower(role)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if len(query.Locations) > 0 {
		location := strings.ToLower(profile.Location)
		matched := false
		for _, loc := range query.Locations {
			if strings.Contains(location, strings.ToLower(loc)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}
