package interfaces

import (
	"context"

	"github.com/ternarybob/indago/internal/models"
)

// LeadService is the orchestration surface for lead-generation jobs:
// it validates requests, runs query parsing, and drives the background
// scraping pipeline.
type LeadService interface {
	// ParseQuery resolves the provider key and parses free text into
	// structured criteria without starting a job.
	ParseQuery(ctx context.Context, freeText string, provider string) (models.StructuredQuery, error)

	// SubmitSearch validates the request, parses the query, persists a
	// pending job and launches the scraping pipeline in the background.
	// The returned job reflects the pending state.
	SubmitSearch(ctx context.Context, req *models.SearchRequest) (*models.LeadJob, error)

	// ActiveJobs reports how many pipelines are currently in flight.
	ActiveJobs() int

	// Wait blocks until in-flight pipelines finish or the context ends.
	Wait(ctx context.Context) error
}
