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

// ProfileStorage implements the ProfileStorage interface for Badger
type ProfileStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewProfileStorage creates a new ProfileStorage instance
func NewProfileStorage(db *BadgerDB, logger arbor.ILogger) interfaces.ProfileStorage {
	return &ProfileStorage{
		db:     db,
		logger: logger,
	}
}

func (s *ProfileStorage) SaveProfiles(ctx context.Context, profiles []models.CandidateProfile) error {
	for i := range profiles {
		p := profiles[i]
		if p.ID == "" {
			return fmt.Errorf("profile ID is required")
		}
		if err := s.db.Store().Upsert(p.ID, &p); err != nil {
			return fmt.Errorf("failed to save profile %s: %w", p.ID, err)
		}
	}
	return nil
}

func (s *ProfileStorage) GetProfilesByJob(ctx context.Context, jobID string) ([]models.CandidateProfile, error) {
	var profiles []models.CandidateProfile
	err := s.db.Store().Find(&profiles, badgerhold.Where("JobID").Eq(jobID).SortBy("EngagementScore").Reverse())
	if err != nil {
		return nil, fmt.Errorf("failed to get profiles for job %s: %w", jobID, err)
	}
	return profiles, nil
}

func (s *ProfileStorage) DeleteProfilesByJob(ctx context.Context, jobID string) (int, error) {
	var profiles []models.CandidateProfile
	if err := s.db.Store().Find(&profiles, badgerhold.Where("JobID").Eq(jobID)); err != nil {
		return 0, fmt.Errorf("failed to find profiles for job %s: %w", jobID, err)
	}

	count := 0
	for i := range profiles {
		if err := s.db.Store().Delete(profiles[i].ID, &models.CandidateProfile{}); err != nil {
			s.logger.Warn().Err(err).Str("profile_id", profiles[i].ID).Msg("Failed to delete profile")
			continue
		}
		count++
	}
	return count, nil
}

func (s *ProfileStorage) DeleteProfilesOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	var profiles []models.CandidateProfile
	if err := s.db.Store().Find(&profiles, badgerhold.Where("ScrapedAt").Lt(cutoff)); err != nil {
		return 0, fmt.Errorf("failed to find expired profiles: %w", err)
	}

	count := 0
	for i := range profiles {
		if err := s.db.Store().Delete(profiles[i].ID, &models.CandidateProfile{}); err != nil {
			s.logger.Warn().Err(err).Str("profile_id", profiles[i].ID).Msg("Failed to delete expired profile")
			continue
		}
		count++
	}
	return count, nil
}

func (s *ProfileStorage) CountProfiles(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.CandidateProfile{}, nil)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
