package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/models"
	"github.com/xuri/excelize/v2"
)

func completedJob(profiles ...models.CandidateProfile) *models.LeadJob {
	now := time.Now()
	return &models.LeadJob{
		ID:            "job-export",
		OriginalQuery: "Find marketing directors at SaaS companies",
		Status:        models.JobStatusCompleted,
		Profiles:      profiles,
		ProfilesFound: len(profiles),
		CompletedAt:   &now,
	}
}

func sampleProfiles() []models.CandidateProfile {
	return []models.CandidateProfile{
		{
			ID:              "prof-1",
			FullName:        "Jane Smith",
			JobTitle:        "Marketing Director",
			CompanyName:     "Acme Corp",
			CompanyWebsite:  "acme.com",
			ProfileURL:      "https://www.linkedin.com/in/jane-smith",
			Email:           "jane.smith@acme.com",
			Location:        "Austin, Texas",
			SeniorityLevel:  models.SeniorityDirector,
			DecisionMaker:   true,
			EngagementScore: 8.0,
		},
		{
			ID:              "prof-2",
			FullName:        "John Doe",
			JobTitle:        "Software Engineer",
			CompanyName:     "Widgets Inc",
			ProfileURL:      "https://www.linkedin.com/in/john-doe",
			Location:        "Remote",
			SeniorityLevel:  models.SeniorityIC,
			DecisionMaker:   false,
			EngagementScore: 5.0,
		},
	}
}

func TestLeadsCSV(t *testing.T) {
	service := NewService(arbor.NewLogger())
	job := completedJob(sampleProfiles()...)

	data, err := service.LeadsCSV(job)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, exportColumns, records[0])
	assert.Equal(t, "Jane Smith", records[1][0])
	assert.Equal(t, "https://www.linkedin.com/in/jane-smith", records[1][4])
	assert.Equal(t, "true", records[1][11])
	assert.Equal(t, "8.0", records[1][12])
	assert.Equal(t, "false", records[2][11])
}

func TestLeadsCSVRejectsUnfinishedJob(t *testing.T) {
	service := NewService(arbor.NewLogger())

	for _, status := range []models.JobStatus{models.JobStatusPending, models.JobStatusRunning, models.JobStatusFailed} {
		job := completedJob(sampleProfiles()...)
		job.Status = status

		_, err := service.LeadsCSV(job)
		assert.Error(t, err, "status %s should not export", status)
	}
}

func TestLeadsCSVRejectsEmptyResults(t *testing.T) {
	service := NewService(arbor.NewLogger())
	job := completedJob()

	_, err := service.LeadsCSV(job)
	assert.ErrorContains(t, err, "no profiles")
}

func TestLeadsXLSX(t *testing.T) {
	service := NewService(arbor.NewLogger())
	job := completedJob(sampleProfiles()...)

	data, err := service.LeadsXLSX(job)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(leadsSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "full_name", header)

	name, err := f.GetCellValue(leadsSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", name)

	rows, err := f.GetRows(leadsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestLeadsPDF(t *testing.T) {
	service := NewService(arbor.NewLogger())
	job := completedJob(sampleProfiles()...)

	data, err := service.LeadsPDF(job)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Basic PDF header check
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestLeadsPDFManyRows(t *testing.T) {
	service := NewService(arbor.NewLogger())

	var profiles []models.CandidateProfile
	for i := 0; i < 80; i++ {
		p := sampleProfiles()[0]
		p.ID = ""
		profiles = append(profiles, p)
	}
	job := completedJob(profiles...)

	data, err := service.LeadsPDF(job)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "linkedin_leads_job_abc.csv", Filename("job_abc", "csv"))
	assert.Equal(t, "linkedin_leads_job_abc.xlsx", Filename("job_abc", "xlsx"))
}
