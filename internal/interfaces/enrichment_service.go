package interfaces

import (
	"context"

	"github.com/ternarybob/indago/internal/models"
)

// EnrichmentService fills contact details (email, phone) onto
// extracted profiles from an external data source. Enrichment is best
// effort: profiles that cannot be enriched pass through unchanged and
// failures never abort the batch.
type EnrichmentService interface {
	EnrichProfiles(ctx context.Context, apiKey string, profiles []models.CandidateProfile) []models.CandidateProfile
}
