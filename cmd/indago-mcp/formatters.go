package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/indago/internal/models"
)

// formatStructuredQuery formats parsed search criteria as markdown
func formatStructuredQuery(query string, parsed models.StructuredQuery) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Parsed Criteria for \"%s\"\n\n", query))

	if len(parsed.Roles) > 0 {
		sb.WriteString(fmt.Sprintf("**Roles:** %s\n", strings.Join(parsed.Roles, ", ")))
	}
	if len(parsed.Locations) > 0 {
		sb.WriteString(fmt.Sprintf("**Locations:** %s\n", strings.Join(parsed.Locations, ", ")))
	}
	if len(parsed.Industries) > 0 {
		sb.WriteString(fmt.Sprintf("**Industries:** %s\n", strings.Join(parsed.Industries, ", ")))
	}
	if len(parsed.SeniorityLevels) > 0 {
		sb.WriteString(fmt.Sprintf("**Seniority:** %s\n", strings.Join(parsed.SeniorityLevels, ", ")))
	}
	sb.WriteString(fmt.Sprintf("**Company size:** %s\n", formatCompanySize(parsed.CompanySizeMin, parsed.CompanySizeMax)))

	return sb.String()
}

// formatCompanySize renders an optional min/max employee range
func formatCompanySize(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d-%d employees", *min, *max)
	case min != nil:
		return fmt.Sprintf("%d+ employees", *min)
	case max != nil:
		return fmt.Sprintf("up to %d employees", *max)
	default:
		return "any"
	}
}

// formatJobSubmitted formats a newly submitted job as markdown
func formatJobSubmitted(job *models.LeadJob) string {
	var sb strings.Builder
	sb.WriteString("## Lead Search Started\n\n")
	sb.WriteString(fmt.Sprintf("**Job ID:** %s\n", job.ID))
	sb.WriteString(fmt.Sprintf("**Status:** %s\n", job.Status))
	sb.WriteString(fmt.Sprintf("**Query:** %s\n", job.OriginalQuery))
	sb.WriteString(fmt.Sprintf("**Provider:** %s\n", job.Provider))
	sb.WriteString(fmt.Sprintf("**Max results:** %d\n\n", job.MaxResults))
	sb.WriteString("The job runs in the background. Use `get_lead_job` with this job ID to check progress.\n")
	return sb.String()
}

// formatJob formats a single job as markdown
func formatJob(job *models.LeadJob) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Lead Job %s\n\n", job.ID))
	sb.WriteString(fmt.Sprintf("**Status:** %s\n", job.Status))
	sb.WriteString(fmt.Sprintf("**Query:** %s\n", job.OriginalQuery))
	sb.WriteString(fmt.Sprintf("**Provider:** %s\n", job.Provider))
	sb.WriteString(fmt.Sprintf("**Created:** %s\n", job.CreatedAt.Format(time.RFC3339)))
	if job.StartedAt != nil {
		sb.WriteString(fmt.Sprintf("**Started:** %s\n", job.StartedAt.Format(time.RFC3339)))
	}
	if job.CompletedAt != nil {
		sb.WriteString(fmt.Sprintf("**Completed:** %s\n", job.CompletedAt.Format(time.RFC3339)))
	}
	sb.WriteString(fmt.Sprintf("**Profiles found:** %d\n", job.ProfilesFound))
	if job.ErrorMessage != "" {
		sb.WriteString(fmt.Sprintf("**Error:** %s\n", job.ErrorMessage))
	}

	sb.WriteString("\n## Criteria\n\n")
	if len(job.ParsedQuery.Roles) > 0 {
		sb.WriteString(fmt.Sprintf("**Roles:** %s\n", strings.Join(job.ParsedQuery.Roles, ", ")))
	}
	if len(job.ParsedQuery.Locations) > 0 {
		sb.WriteString(fmt.Sprintf("**Locations:** %s\n", strings.Join(job.ParsedQuery.Locations, ", ")))
	}
	if len(job.ParsedQuery.Industries) > 0 {
		sb.WriteString(fmt.Sprintf("**Industries:** %s\n", strings.Join(job.ParsedQuery.Industries, ", ")))
	}
	sb.WriteString(fmt.Sprintf("**Company size:** %s\n", formatCompanySize(job.ParsedQuery.CompanySizeMin, job.ParsedQuery.CompanySizeMax)))

	return sb.String()
}

// formatJobList formats recent jobs as markdown
func formatJobList(jobs []*models.LeadJob, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Recent Lead Jobs (%d of %d)\n\n", len(jobs), limit))

	if len(jobs) == 0 {
		sb.WriteString("No jobs found.\n")
		return sb.String()
	}

	for i, job := range jobs {
		sb.WriteString(fmt.Sprintf("%d. **%s** (%s)\n", i+1, job.ID, job.Status))
		sb.WriteString(fmt.Sprintf("   Query: %s\n", job.OriginalQuery))
		sb.WriteString(fmt.Sprintf("   Created: %s | Profiles: %d\n", job.CreatedAt.Format(time.RFC3339), job.ProfilesFound))
		if job.ErrorMessage != "" {
			sb.WriteString(fmt.Sprintf("   Error: %s\n", job.ErrorMessage))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatProfiles formats a job's collected profiles as markdown
func formatProfiles(job *models.LeadJob, profiles []models.CandidateProfile, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Profiles for %s (%d collected, job %s)\n\n", job.ID, len(profiles), job.Status))

	if len(profiles) == 0 {
		sb.WriteString("No profiles collected.\n")
		return sb.String()
	}

	if limit > 0 && len(profiles) > limit {
		profiles = profiles[:limit]
	}

	for i, p := range profiles {
		sb.WriteString(fmt.Sprintf("### %d. %s\n", i+1, p.FullName))
		sb.WriteString(fmt.Sprintf("**Title:** %s at %s\n", p.JobTitle, p.CompanyName))
		if p.Location != "" {
			sb.WriteString(fmt.Sprintf("**Location:** %s\n", p.Location))
		}
		if p.ProfileURL != "" {
			sb.WriteString(fmt.Sprintf("**Profile:** %s\n", p.ProfileURL))
		}
		if p.Email != "" {
			sb.WriteString(fmt.Sprintf("**Email:** %s\n", p.Email))
		}
		sb.WriteString(fmt.Sprintf("**Engagement score:** %.1f", p.EngagementScore))
		if p.DecisionMaker {
			sb.WriteString(" (decision maker)")
		}
		sb.WriteString("\n\n")
	}

	return sb.String()
}
