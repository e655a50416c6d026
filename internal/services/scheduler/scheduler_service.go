package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// staleCheckInterval is how often running jobs are checked for a dead
// heartbeat. Kept shorter than the retention schedule so crashed
// pipelines surface quickly.
const staleCheckInterval = 5 * time.Minute

// Service runs background maintenance for the job store: failing jobs
// interrupted by a restart, failing running jobs whose heartbeat went
// stale, and deleting terminal jobs past the retention window.
type Service struct {
	config   *common.Config
	storage  interfaces.StorageManager
	events   interfaces.EventService
	cron     *cron.Cron
	logger   arbor.ILogger
	mu       sync.Mutex
	sweeping bool
	running  bool

	staleTicker *time.Ticker
	staleDone   chan struct{}
}

var _ interfaces.SchedulerService = (*Service)(nil)

// NewService creates a new scheduler service
func NewService(config *common.Config, storage interfaces.StorageManager, events interfaces.EventService, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		storage: storage,
		events:  events,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start fails jobs left over from a previous run, schedules the
// retention cleanup, and launches the stale-heartbeat detector
func (s *Service) Start() error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if err := s.cleanupInterruptedJobs(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to clean up interrupted jobs")
	}

	schedule := s.config.Jobs.CleanupSchedule
	if schedule == "" {
		schedule = "0 * * * *"
	}
	if _, err := s.cron.AddFunc(schedule, s.runScheduledMaintenance); err != nil {
		return fmt.Errorf("failed to add cleanup job: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.staleTicker = time.NewTicker(staleCheckInterval)
	s.staleDone = make(chan struct{})
	go s.staleJobDetectorLoop()

	s.logger.Info().
		Str("cleanup_schedule", schedule).
		Str("stale_cutoff", s.config.StaleJobCutoff().String()).
		Msg("Scheduler started")

	return nil
}

// Stop halts the scheduler
func (s *Service) Stop() error {
	if !s.running {
		return nil
	}

	s.staleTicker.Stop()
	close(s.staleDone)
	s.cron.Stop()
	s.running = false

	s.logger.Info().Msg("Scheduler stopped")
	return nil
}

// IsRunning returns true if scheduler is active
func (s *Service) IsRunning() bool {
	return s.running
}

// RunMaintenanceNow triggers one sweep-and-cleanup pass immediately
func (s *Service) RunMaintenanceNow(ctx context.Context) error {
	return errors.Join(
		s.sweepStaleJobs(ctx),
		s.cleanupExpiredJobs(ctx),
	)
}

// runScheduledMaintenance is the cron entry point
func (s *Service) runScheduledMaintenance() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("panic", fmt.Sprintf("%v", r)).
				Msg("PANIC RECOVERED in maintenance sweep")
		}
	}()

	s.mu.Lock()
	if s.sweeping {
		s.mu.Unlock()
		s.logger.Debug().Msg("Maintenance sweep already in progress, skipping cycle")
		return
	}
	s.sweeping = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.sweeping = false
		s.mu.Unlock()
	}()

	if err := s.RunMaintenanceNow(context.Background()); err != nil {
		s.logger.Error().Err(err).Msg("Maintenance sweep failed")
	}
}

// cleanupInterruptedJobs fails pending and running jobs left behind by
// a previous process. Their pipelines died with the process, so no
// heartbeat will ever arrive.
func (s *Service) cleanupInterruptedJobs() error {
	ctx := context.Background()
	jobs, err := s.storage.JobStorage().GetUnfinishedJobs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get unfinished jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil
	}

	s.logger.Info().Int("count", len(jobs)).Msg("Cleaning up jobs interrupted by restart")

	cleaned := 0
	for _, job := range jobs {
		if err := s.storage.JobStorage().FailJob(ctx, job.ID, "Service restarted while job was running"); err != nil {
			if !errors.Is(err, models.ErrJobFinished) {
				s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("Failed to fail interrupted job")
			}
			continue
		}
		s.publishFailure(ctx, job.ID)
		cleaned++
	}

	s.logger.Info().Int("count", cleaned).Msg("Interrupted jobs cleaned up")
	return nil
}

// sweepStaleJobs fails running jobs whose heartbeat went silent
func (s *Service) sweepStaleJobs(ctx context.Context) error {
	cutoff := s.config.StaleJobCutoff()
	stale, err := s.storage.JobStorage().GetStaleJobs(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to get stale jobs: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	s.logger.Warn().
		Int("count", len(stale)).
		Str("cutoff", cutoff.String()).
		Msg("Detected stale jobs")

	reason := fmt.Sprintf("Job stale (no heartbeat for %s)", cutoff)
	for _, job := range stale {
		if err := s.storage.JobStorage().FailJob(ctx, job.ID, reason); err != nil {
			// The pipeline may have finished the job between the stale
			// read and this write.
			if !errors.Is(err, models.ErrJobFinished) {
				s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("Failed to fail stale job")
			}
			continue
		}
		s.logger.Info().Str("job_id", job.ID).Msg("Marked stale job as failed")
		s.publishFailure(ctx, job.ID)
	}

	return nil
}

// cleanupExpiredJobs deletes terminal jobs and profiles past retention
func (s *Service) cleanupExpiredJobs(ctx context.Context) error {
	days := s.config.Jobs.RetentionDays
	if days <= 0 {
		return nil
	}
	cutoff := time.Now().AddDate(0, 0, -days)

	deletedJobs, err := s.storage.JobStorage().DeleteJobsOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete expired jobs: %w", err)
	}

	deletedProfiles, err := s.storage.ProfileStorage().DeleteProfilesOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete expired profiles: %w", err)
	}

	if deletedJobs > 0 || deletedProfiles > 0 {
		s.logger.Info().
			Int("jobs", deletedJobs).
			Int("profiles", deletedProfiles).
			Int("retention_days", days).
			Msg("Expired records deleted")
	}

	return nil
}

// staleJobDetectorLoop periodically sweeps for dead heartbeats
func (s *Service) staleJobDetectorLoop() {
	for {
		select {
		case <-s.staleDone:
			return
		case <-s.staleTicker.C:
			if err := s.sweepStaleJobs(context.Background()); err != nil {
				s.logger.Error().Err(err).Msg("Stale job detection failed")
			}
		}
	}
}

// publishFailure emits the failed-job event with the stored record
func (s *Service) publishFailure(ctx context.Context, jobID string) {
	if s.events == nil {
		return
	}
	job, err := s.storage.JobStorage().GetJob(ctx, jobID)
	if err != nil {
		return
	}
	event := interfaces.Event{Type: interfaces.EventJobFailed, Payload: job}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("job_id", jobID).Msg("Failed to publish failure event")
	}
}
