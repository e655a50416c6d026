package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/indago/internal/models"
)

// ProfileStorage persists extracted candidate profiles independently
// of the jobs that produced them, keyed by profile id and queryable by
// job id.
type ProfileStorage interface {
	SaveProfiles(ctx context.Context, profiles []models.CandidateProfile) error
	GetProfilesByJob(ctx context.Context, jobID string) ([]models.CandidateProfile, error)
	DeleteProfilesByJob(ctx context.Context, jobID string) (int, error)
	// DeleteProfilesOlderThan removes profiles scraped before the cutoff,
	// returning how many were deleted. Used by retention cleanup.
	DeleteProfilesOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	CountProfiles(ctx context.Context) (int, error)
}
