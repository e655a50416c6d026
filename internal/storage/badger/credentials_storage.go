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

// credentialsKey is the fixed key for the single credentials record.
const credentialsKey = "default"

// CredentialsStorage implements the CredentialsStorage interface for Badger
type CredentialsStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCredentialsStorage creates a new CredentialsStorage instance
func NewCredentialsStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CredentialsStorage {
	return &CredentialsStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CredentialsStorage) SaveCredentials(ctx context.Context, creds *models.Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are required")
	}
	creds.UpdatedAt = time.Now()

	if err := s.db.Store().Upsert(credentialsKey, creds); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func (s *CredentialsStorage) GetCredentials(ctx context.Context) (*models.Credentials, error) {
	var creds models.Credentials
	if err := s.db.Store().Get(credentialsKey, &creds); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, fmt.Errorf("no credentials configured")
		}
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	return &creds, nil
}

func (s *CredentialsStorage) HasCredentials(ctx context.Context) (bool, error) {
	var creds models.Credentials
	if err := s.db.Store().Get(credentialsKey, &creds); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("failed to check credentials: %w", err)
	}
	return true, nil
}
