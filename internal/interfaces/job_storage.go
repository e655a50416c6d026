package interfaces

import (
	"context"
	"time"

	"github.com/ternarybob/indago/internal/models"
)

// JobStorage persists lead-generation jobs and their lifecycle
// transitions. Each job has a single writer (the goroutine running
// it), so the update methods may read-modify-write without additional
// coordination.
type JobStorage interface {
	// Job lifecycle
	CreateJob(ctx context.Context, job *models.LeadJob) error
	MarkJobRunning(ctx context.Context, id string) error
	CompleteJob(ctx context.Context, id string, profiles []models.CandidateProfile) error
	FailJob(ctx context.Context, id string, message string) error
	TouchJob(ctx context.Context, id string) error

	// Retrieval
	GetJob(ctx context.Context, id string) (*models.LeadJob, error)
	ListRecentJobs(ctx context.Context, limit int) ([]*models.LeadJob, error)
	GetUnfinishedJobs(ctx context.Context) ([]*models.LeadJob, error)
	GetStaleJobs(ctx context.Context, olderThan time.Duration) ([]*models.LeadJob, error)

	// Maintenance
	DeleteJob(ctx context.Context, id string) error
	DeleteJobsOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	CountJobs(ctx context.Context) (int, error)
	CountJobsByStatus(ctx context.Context, status models.JobStatus) (int, error)
}
