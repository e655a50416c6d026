package interfaces

import (
	"github.com/ternarybob/indago/internal/models"
)

// ExportService renders a completed job's profiles into downloadable
// documents. Every method rejects jobs that are not completed or that
// completed with zero profiles.
type ExportService interface {
	LeadsCSV(job *models.LeadJob) ([]byte, error)
	LeadsXLSX(job *models.LeadJob) ([]byte, error)
	LeadsPDF(job *models.LeadJob) ([]byte, error)
}
