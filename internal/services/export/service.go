package export

import (
	"errors"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// Export precondition failures, surfaced to callers so the HTTP layer
// can report them as client errors.
var (
	ErrJobNotCompleted = errors.New("job not completed")
	ErrNoProfiles      = errors.New("no profiles found")
)

// Column order for tabular exports. CSV and XLSX carry all of these;
// the PDF keeps a readable subset.
var exportColumns = []string{
	"full_name",
	"job_title",
	"company_name",
	"company_website",
	"linkedin_profile_url",
	"email_address",
	"phone_number",
	"industry",
	"location",
	"company_size",
	"seniority_level",
	"decision_maker_indicator",
	"engagement_score",
}

// Service renders completed lead jobs into downloadable documents
type Service struct {
	logger arbor.ILogger
}

var _ interfaces.ExportService = (*Service)(nil)

// NewService creates a new export service
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
	}
}

// exportable rejects jobs with nothing to export
func exportable(job *models.LeadJob) error {
	if job == nil {
		return fmt.Errorf("job is required")
	}
	if job.Status != models.JobStatusCompleted {
		return ErrJobNotCompleted
	}
	if len(job.Profiles) == 0 {
		return ErrNoProfiles
	}
	return nil
}

// Filename returns the download filename for a job export
func Filename(jobID, extension string) string {
	return fmt.Sprintf("linkedin_leads_%s.%s", jobID, extension)
}

// LeadsCSV renders the job's profiles as CSV
func (s *Service) LeadsCSV(job *models.LeadJob) ([]byte, error) {
	if err := exportable(job); err != nil {
		return nil, err
	}

	data, err := writeCSV(job.Profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Int("profiles", len(job.Profiles)).
		Msg("CSV export generated")
	return data, nil
}

// LeadsXLSX renders the job's profiles as an Excel workbook
func (s *Service) LeadsXLSX(job *models.LeadJob) ([]byte, error) {
	if err := exportable(job); err != nil {
		return nil, err
	}

	data, err := writeXLSX(job.Profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Int("profiles", len(job.Profiles)).
		Msg("XLSX export generated")
	return data, nil
}

// LeadsPDF renders the job's profiles as a printable lead sheet
func (s *Service) LeadsPDF(job *models.LeadJob) ([]byte, error) {
	if err := exportable(job); err != nil {
		return nil, err
	}

	data, err := writePDF(job)
	if err != nil {
		return nil, fmt.Errorf("failed to write PDF: %w", err)
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Int("profiles", len(job.Profiles)).
		Msg("PDF export generated")
	return data, nil
}
