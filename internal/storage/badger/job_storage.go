package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// JobStorage implements the JobStorage interface for Badger
type JobStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewJobStorage creates a new JobStorage instance
func NewJobStorage(db *BadgerDB, logger arbor.ILogger) interfaces.JobStorage {
	return &JobStorage{
		db:     db,
		logger: logger,
	}
}

func (s *JobStorage) CreateJob(ctx context.Context, job *models.LeadJob) error {
	if job.ID == "" {
		return fmt.Errorf("job ID is required")
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	if job.Status == "" {
		job.Status = models.JobStatusPending
	}

	if err := s.db.Store().Insert(job.ID, job); err != nil {
		if err == badgerhold.ErrKeyExists {
			return fmt.Errorf("job already exists: %s", job.ID)
		}
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (s *JobStorage) GetJob(ctx context.Context, id string) (*models.LeadJob, error) {
	var job models.LeadJob
	if err := s.db.Store().Get(id, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("job not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// update applies a mutation to a stored job. Each job has a single
// writer so read-modify-write is safe here. Terminal states are
// absorbing: once completed or failed the record never changes again,
// which keeps the stale-job sweep from overwriting a finished run.
func (s *JobStorage) update(id string, mutate func(*models.LeadJob)) error {
	var job models.LeadJob
	if err := s.db.Store().Get(id, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return fmt.Errorf("job not found: %s", id)
		}
		return fmt.Errorf("failed to get job: %w", err)
	}

	if job.Status.IsTerminal() {
		return fmt.Errorf("%w: %s is %s", models.ErrJobFinished, id, job.Status)
	}

	mutate(&job)

	if err := s.db.Store().Upsert(job.ID, &job); err != nil {
		return fmt.Errorf("failed to save job: %w", err)
	}
	return nil
}

func (s *JobStorage) MarkJobRunning(ctx context.Context, id string) error {
	return s.update(id, func(job *models.LeadJob) {
		now := time.Now()
		job.Status = models.JobStatusRunning
		job.StartedAt = &now
		job.LastHeartbeat = &now
	})
}

func (s *JobStorage) CompleteJob(ctx context.Context, id string, profiles []models.CandidateProfile) error {
	return s.update(id, func(job *models.LeadJob) {
		now := time.Now()
		job.Status = models.JobStatusCompleted
		job.Profiles = profiles
		job.ProfilesFound = len(profiles)
		job.CompletedAt = &now
		job.ErrorMessage = ""
	})
}

func (s *JobStorage) FailJob(ctx context.Context, id string, message string) error {
	return s.update(id, func(job *models.LeadJob) {
		now := time.Now()
		job.Status = models.JobStatusFailed
		job.ErrorMessage = message
		job.CompletedAt = &now
	})
}

func (s *JobStorage) TouchJob(ctx context.Context, id string) error {
	return s.update(id, func(job *models.LeadJob) {
		now := time.Now()
		job.LastHeartbeat = &now
	})
}

func (s *JobStorage) ListRecentJobs(ctx context.Context, limit int) ([]*models.LeadJob, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var jobs []models.LeadJob
	if err := s.db.Store().Find(&jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	result := make([]*models.LeadJob, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

func (s *JobStorage) GetUnfinishedJobs(ctx context.Context) ([]*models.LeadJob, error) {
	var jobs []models.LeadJob
	err := s.db.Store().Find(&jobs, badgerhold.Where("Status").In(models.JobStatusPending, models.JobStatusRunning).SortBy("CreatedAt"))
	if err != nil {
		return nil, fmt.Errorf("failed to get unfinished jobs: %w", err)
	}

	result := make([]*models.LeadJob, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

func (s *JobStorage) GetStaleJobs(ctx context.Context, olderThan time.Duration) ([]*models.LeadJob, error) {
	threshold := time.Now().Add(-olderThan)
	var jobs []models.LeadJob
	// Running jobs whose heartbeat predates the threshold
	err := s.db.Store().Find(&jobs, badgerhold.Where("Status").Eq(models.JobStatusRunning).And("LastHeartbeat").Lt(threshold))
	if err != nil {
		return nil, fmt.Errorf("failed to get stale jobs: %w", err)
	}

	result := make([]*models.LeadJob, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

func (s *JobStorage) DeleteJob(ctx context.Context, id string) error {
	if err := s.db.Store().Delete(id, &models.LeadJob{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete job: %w", err)
	}
	return nil
}

func (s *JobStorage) DeleteJobsOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var jobs []models.LeadJob
	err := s.db.Store().Find(&jobs, badgerhold.Where("Status").In(models.JobStatusCompleted, models.JobStatusFailed).And("CreatedAt").Lt(cutoff))
	if err != nil {
		return 0, fmt.Errorf("failed to find expired jobs: %w", err)
	}

	count := 0
	for i := range jobs {
		if err := s.db.Store().Delete(jobs[i].ID, &models.LeadJob{}); err != nil {
			s.logger.Warn().Err(err).Str("job_id", jobs[i].ID).Msg("Failed to delete expired job")
			continue
		}
		count++
	}
	return count, nil
}

func (s *JobStorage) CountJobs(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.LeadJob{}, nil)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *JobStorage) CountJobsByStatus(ctx context.Context, status models.JobStatus) (int, error) {
	count, err := s.db.Store().Count(&models.LeadJob{}, badgerhold.Where("Status").Eq(status))
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
