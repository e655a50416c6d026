package leads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/ternarybob/indago/internal/common"
	"github.com/ternarybob/indago/internal/interfaces"
	"github.com/ternarybob/indago/internal/models"
)

// runPipeline executes one lead job to a terminal state: launch a
// browser, log in, extract profiles, enrich and persist. The job copy
// is private to this goroutine; terminal writes use a background
// context so a timed-out run can still record its outcome.
func (s *Service) runPipeline(job models.LeadJob, creds *models.Credentials) {
	defer s.wg.Done()
	defer atomic.AddInt64(&s.active, -1)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.MaxJobDuration())
	defer cancel()

	var session interfaces.BrowserSession
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("job_id", job.ID).
				Msg(fmt.Sprintf("Pipeline panic: %v", r))
			s.failJob(job.ID, fmt.Sprintf("internal error: %v", r))
		}
		if session != nil {
			session.Close()
		}
	}()

	store := s.storage.JobStorage()

	if err := store.MarkJobRunning(ctx, job.ID); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to mark job running")
		return
	}
	s.publishJobSnapshot(interfaces.EventJobStarted, job.ID)

	s.logger.Info().
		Str("job_id", job.ID).
		Str("query", job.OriginalQuery).
		Msg("Lead pipeline started")

	launched, err := s.launcher.Launch(ctx)
	if err != nil {
		s.failJob(job.ID, s.stageError(ctx, err))
		return
	}
	session = launched
	s.heartbeat(job.ID)

	ok, err := s.auth.Login(ctx, session, creds)
	if err != nil {
		s.failJob(job.ID, s.stageError(ctx, fmt.Errorf("LinkedIn login error: %w", err)))
		return
	}
	if !ok {
		s.failJob(job.ID, "LinkedIn login failed")
		return
	}
	s.heartbeat(job.ID)

	// Extraction degrades instead of failing: a timeout mid-search still
	// completes the job with whatever was collected. Only a timeout that
	// produced nothing at all fails the job.
	profiles := s.extractor.Search(ctx, session, job.ParsedQuery, job.MaxResults)
	s.heartbeat(job.ID)

	if len(profiles) == 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		s.failJob(job.ID, s.stageError(ctx, ctx.Err()))
		return
	}

	for i := range profiles {
		profiles[i].ID = common.NewProfileID()
		profiles[i].JobID = job.ID
	}

	if hunterKey := resolveHunterKey(creds); hunterKey != "" {
		profiles = s.enricher.EnrichProfiles(ctx, hunterKey, profiles)
	}

	storeCtx := context.Background()
	if len(profiles) > 0 {
		if err := s.storage.ProfileStorage().SaveProfiles(storeCtx, profiles); err != nil {
			s.logger.Warn().Err(err).Str("job_id", job.ID).Msg("Failed to persist profiles")
		}
	}

	if err := store.CompleteJob(storeCtx, job.ID, profiles); err != nil {
		s.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to complete job")
		s.failJob(job.ID, fmt.Sprintf("failed to record results: %v", err))
		return
	}

	s.logger.Info().
		Str("job_id", job.ID).
		Int("profiles_found", len(profiles)).
		Msg("Lead pipeline completed")

	s.publishJobSnapshot(interfaces.EventJobCompleted, job.ID)
}

// stageError rewrites context expiry into a user-facing timeout message
func (s *Service) stageError(ctx context.Context, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("job timed out after %s", s.config.MaxJobDuration())
	}
	return err.Error()
}

// failJob records the terminal failure and emits the lifecycle event
func (s *Service) failJob(jobID string, message string) {
	if err := s.storage.JobStorage().FailJob(context.Background(), jobID, message); err != nil {
		if errors.Is(err, models.ErrJobFinished) {
			s.logger.Debug().Str("job_id", jobID).Msg("Job already finished, skipping failure write")
			return
		}
		s.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to record job failure")
		return
	}
	s.logger.Warn().
		Str("job_id", jobID).
		Str("error", message).
		Msg("Lead pipeline failed")
	s.publishJobSnapshot(interfaces.EventJobFailed, jobID)
}

// heartbeat refreshes the job's liveness marker
func (s *Service) heartbeat(jobID string) {
	if err := s.storage.JobStorage().TouchJob(context.Background(), jobID); err != nil {
		s.logger.Debug().Err(err).Str("job_id", jobID).Msg("Failed to refresh heartbeat")
	}
}

// publishJobSnapshot loads the job's current record and publishes it
func (s *Service) publishJobSnapshot(eventType interfaces.EventType, jobID string) {
	job, err := s.storage.JobStorage().GetJob(context.Background(), jobID)
	if err != nil {
		s.logger.Debug().Err(err).Str("job_id", jobID).Msg("Failed to load job for event")
		return
	}
	s.publishJobEvent(eventType, job)
}

// resolveHunterKey finds the enrichment API key. Environment variables
// take precedence over stored credentials, matching ResolveAPIKey.
func resolveHunterKey(creds *models.Credentials) string {
	for _, name := range []string{"INDAGO_HUNTER_API_KEY", "HUNTER_API_KEY"} {
		if value := os.Getenv(name); value != "" {
			return value
		}
	}
	if creds != nil {
		return creds.HunterAPIKey
	}
	return ""
}
